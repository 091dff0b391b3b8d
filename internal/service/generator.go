package service

import (
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

// GeneratorService handles one-shot password generation.
type GeneratorService struct {
	lengths LengthValidator
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(lengths LengthValidator) *GeneratorService {
	return &GeneratorService{lengths: lengths}
}

// Generate produces a password based on the given request.
// Omitted options take their value from crypto.DefaultConfig.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	if err := s.lengths.Validate(req.Length); err != nil {
		return model.GenerateResponse{}, err
	}

	defaults := crypto.DefaultConfig()
	cfg := crypto.GenerationConfig{
		Length:    req.Length,
		Lowercase: boolOrDefault(req.Lowercase, defaults.Lowercase),
		Uppercase: boolOrDefault(req.Uppercase, defaults.Uppercase),
		Numbers:   boolOrDefault(req.Numbers, defaults.Numbers),
		Symbols:   boolOrDefault(req.Symbols, defaults.Symbols),
	}

	pool := cfg.Pool()
	password, err := crypto.GeneratePassword(pool, cfg.Length)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password: password,
		Length:   len(password),
		PoolSize: len(pool),
	}, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
