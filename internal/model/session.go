package model

import (
	"time"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

// SessionState is the state of a generator form.
type SessionState string

const (
	StateIdle      SessionState = "idle"
	StateGenerated SessionState = "generated"
)

// Session is the presentation state of one generator form: the selected
// options and, once generated, the displayed password.
type Session struct {
	ID        string
	State     SessionState
	Config    crypto.GenerationConfig
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// OptionsRequest toggles character classes. Nil fields are left unchanged.
type OptionsRequest struct {
	Lowercase *bool `json:"lowercase"`
	Uppercase *bool `json:"uppercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// SessionGenerateRequest carries the length field of the form.
type SessionGenerateRequest struct {
	Length LengthInput `json:"length"`
}

// SessionResponse is the API view of a session. Password is only set in the
// generated state.
type SessionResponse struct {
	ID        string                  `json:"id"`
	State     SessionState            `json:"state"`
	Config    crypto.GenerationConfig `json:"config"`
	Password  string                  `json:"password,omitempty"`
	ExpiresAt time.Time               `json:"expires_at"`
}

// StartSessionResponse is returned when a new session is created.
type StartSessionResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// NewSessionResponse builds the API view of s.
func NewSessionResponse(s *Session) SessionResponse {
	resp := SessionResponse{
		ID:        s.ID,
		State:     s.State,
		Config:    s.Config,
		ExpiresAt: s.ExpiresAt,
	}
	if s.State == StateGenerated {
		resp.Password = s.Password
	}
	return resp
}
