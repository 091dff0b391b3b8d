package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
)

// SessionService drives the generator form through its idle and generated states.
type SessionService struct {
	repo      *repository.SessionRepository
	lengths   LengthValidator
	jwtSecret string
	ttl       time.Duration
}

// NewSessionService creates a new SessionService.
func NewSessionService(repo *repository.SessionRepository, lengths LengthValidator, secret string, ttl time.Duration) *SessionService {
	return &SessionService{
		repo:      repo,
		lengths:   lengths,
		jwtSecret: secret,
		ttl:       ttl,
	}
}

// Start opens a new session in the idle state with default options and
// returns a bearer token for it.
func (s *SessionService) Start(ctx context.Context) (model.StartSessionResponse, error) {
	if removed, err := s.repo.DeleteExpired(ctx); err != nil {
		return model.StartSessionResponse{}, err
	} else if removed > 0 {
		slog.Debug("pruned expired sessions", "count", removed)
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		State:     model.StateIdle,
		Config:    crypto.DefaultConfig(),
		ExpiresAt: time.Now().Add(s.ttl).UTC(),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return model.StartSessionResponse{}, err
	}

	token, err := crypto.GenerateToken(session.ID, s.jwtSecret, s.ttl)
	if err != nil {
		return model.StartSessionResponse{}, err
	}

	return model.StartSessionResponse{
		Token:   token,
		Session: model.NewSessionResponse(session),
	}, nil
}

// Get returns the current state of a session.
func (s *SessionService) Get(ctx context.Context, id string) (model.SessionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return model.SessionResponse{}, err
	}
	return model.NewSessionResponse(session), nil
}

// SetOptions toggles character classes. The state and any displayed password are kept.
func (s *SessionService) SetOptions(ctx context.Context, id string, req model.OptionsRequest) (model.SessionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return model.SessionResponse{}, err
	}

	cfg := &session.Config
	cfg.Lowercase = boolOrDefault(req.Lowercase, cfg.Lowercase)
	cfg.Uppercase = boolOrDefault(req.Uppercase, cfg.Uppercase)
	cfg.Numbers = boolOrDefault(req.Numbers, cfg.Numbers)
	cfg.Symbols = boolOrDefault(req.Symbols, cfg.Symbols)

	if err := s.save(ctx, session); err != nil {
		return model.SessionResponse{}, err
	}
	return model.NewSessionResponse(session), nil
}

// Generate validates the length field, generates a password from the
// session's options and moves the session to the generated state. On any
// error the session is left exactly as it was.
func (s *SessionService) Generate(ctx context.Context, id string, req model.SessionGenerateRequest) (model.SessionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return model.SessionResponse{}, err
	}

	length, err := s.lengths.ParseLength(string(req.Length))
	if err != nil {
		return model.SessionResponse{}, err
	}

	cfg := session.Config
	cfg.Length = length

	password, err := crypto.Generate(cfg)
	if err != nil {
		return model.SessionResponse{}, err
	}

	session.Config = cfg
	session.Password = password
	session.State = model.StateGenerated

	if err := s.save(ctx, session); err != nil {
		return model.SessionResponse{}, err
	}
	return model.NewSessionResponse(session), nil
}

// Reset clears the password and length, restores default options and
// returns the session to the idle state.
func (s *SessionService) Reset(ctx context.Context, id string) (model.SessionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return model.SessionResponse{}, err
	}

	session.Config = crypto.DefaultConfig()
	session.Password = ""
	session.State = model.StateIdle

	if err := s.save(ctx, session); err != nil {
		return model.SessionResponse{}, err
	}
	return model.NewSessionResponse(session), nil
}

func (s *SessionService) load(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *SessionService) save(ctx context.Context, session *model.Session) error {
	if err := s.repo.Update(ctx, session); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}
