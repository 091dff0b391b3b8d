package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var errLengthInputType = errors.New("length must be a string or a number")

// GenerateRequest represents a one-shot password generation request.
// Pointer bools allow distinguishing between missing (nil -> form default) and explicit false.
type GenerateRequest struct {
	Length    int   `json:"length"`
	Lowercase *bool `json:"lowercase"`
	Uppercase *bool `json:"uppercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	PoolSize int    `json:"pool_size"`
}

// LengthInput is the raw content of the length field. Clients may send it
// as a JSON string ("8") or a JSON number (8); both decode to the same text.
type LengthInput string

// UnmarshalJSON accepts a JSON string, number or null.
func (l *LengthInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = LengthInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errLengthInputType
	}
	*l = LengthInput(n.String())
	return nil
}

// NewLengthInput formats n as field input.
func NewLengthInput(n int) LengthInput {
	return LengthInput(strconv.Itoa(n))
}
