package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars     = "0123456789"
	SymbolChars    = "!@#$%^&*()_+"
)

var (
	ErrEmptyPool     = errors.New("at least one character type must be selected")
	ErrInvalidLength = errors.New("password length must be a positive integer")
)

// GenerationConfig holds the password length and the enabled character classes.
type GenerationConfig struct {
	Length    int  `json:"length"`
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Numbers   bool `json:"numbers"`
	Symbols   bool `json:"symbols"`
}

// DefaultConfig returns the initial form state: lowercase only, no length chosen.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{Lowercase: true}
}

// Pool returns the character pool for the enabled classes.
func (c GenerationConfig) Pool() string {
	return BuildPool(c.Lowercase, c.Uppercase, c.Numbers, c.Symbols)
}

// BuildPool concatenates the enabled alphabets in a fixed order:
// lowercase, uppercase, digits, symbols. It returns "" if nothing is enabled.
func BuildPool(lower, upper, digits, symbols bool) string {
	var pool []byte
	if lower {
		pool = append(pool, LowercaseChars...)
	}
	if upper {
		pool = append(pool, UppercaseChars...)
	}
	if digits {
		pool = append(pool, DigitChars...)
	}
	if symbols {
		pool = append(pool, SymbolChars...)
	}
	return string(pool)
}

// Sampler draws characters uniformly, with replacement, from a pool.
type Sampler struct {
	rand io.Reader
}

// NewSampler returns a Sampler reading entropy from r.
func NewSampler(r io.Reader) *Sampler {
	return &Sampler{rand: r}
}

var defaultSampler = NewSampler(rand.Reader)

// Sample returns length characters drawn independently from pool.
// An empty pool is reported before the length is looked at.
func (s *Sampler) Sample(pool string, length int) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	if length <= 0 {
		return "", ErrInvalidLength
	}

	bound := big.NewInt(int64(len(pool)))
	result := make([]byte, length)
	for i := range result {
		// rand.Int is uniform over [0, bound).
		n, err := rand.Int(s.rand, bound)
		if err != nil {
			return "", fmt.Errorf("drawing index: %w", err)
		}
		result[i] = pool[n.Int64()]
	}

	return string(result), nil
}

// GeneratePassword creates a password of the given length from pool using crypto/rand.
func GeneratePassword(pool string, length int) (string, error) {
	return defaultSampler.Sample(pool, length)
}

// Generate creates a password for cfg.
func Generate(cfg GenerationConfig) (string, error) {
	return GeneratePassword(cfg.Pool(), cfg.Length)
}
