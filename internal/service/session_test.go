package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/repository"
)

const testSecret = "test-secret"

func newTestSessionService(ttl time.Duration) *SessionService {
	return NewSessionService(repository.NewSessionRepository(), DefaultLengthValidator(), testSecret, ttl)
}

func startSession(t *testing.T, svc *SessionService) string {
	t.Helper()
	resp, err := svc.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	return resp.Session.ID
}

func TestStart(t *testing.T) {
	svc := newTestSessionService(time.Hour)

	resp, err := svc.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	if resp.Session.State != model.StateIdle {
		t.Errorf("expected idle state, got %q", resp.Session.State)
	}
	if resp.Session.Config != crypto.DefaultConfig() {
		t.Errorf("expected default config, got %+v", resp.Session.Config)
	}
	if resp.Session.Password != "" {
		t.Errorf("expected no password, got %q", resp.Session.Password)
	}

	claims, err := crypto.ValidateToken(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.SessionID != resp.Session.ID {
		t.Errorf("token session = %q, want %q", claims.SessionID, resp.Session.ID)
	}
}

func TestSessionGenerate(t *testing.T) {
	svc := newTestSessionService(time.Hour)
	ctx := context.Background()
	id := startSession(t, svc)

	resp, err := svc.Generate(ctx, id, model.SessionGenerateRequest{Length: "8"})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if resp.State != model.StateGenerated {
		t.Errorf("expected generated state, got %q", resp.State)
	}
	if resp.Config.Length != 8 || len(resp.Password) != 8 {
		t.Errorf("expected 8 characters, got config %d and %q", resp.Config.Length, resp.Password)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Password != resp.Password {
		t.Errorf("stored password %q, want %q", got.Password, resp.Password)
	}
}

func TestSessionGenerateWithAllOptions(t *testing.T) {
	svc := newTestSessionService(time.Hour)
	ctx := context.Background()
	id := startSession(t, svc)

	_, err := svc.SetOptions(ctx, id, model.OptionsRequest{
		Uppercase: boolPtr(true),
		Numbers:   boolPtr(true),
		Symbols:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("SetOptions() unexpected error: %v", err)
	}

	resp, err := svc.Generate(ctx, id, model.SessionGenerateRequest{Length: "12"})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	pool := crypto.BuildPool(true, true, true, true)
	if len(resp.Password) != 12 {
		t.Fatalf("expected 12 characters, got %q", resp.Password)
	}
	for _, c := range resp.Password {
		if !strings.ContainsRune(pool, c) {
			t.Errorf("unexpected character %q", c)
		}
	}
}

func TestSessionGenerateInvalidLengthKeepsState(t *testing.T) {
	svc := newTestSessionService(time.Hour)
	ctx := context.Background()
	id := startSession(t, svc)

	first, err := svc.Generate(ctx, id, model.SessionGenerateRequest{Length: "10"})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	for _, raw := range []model.LengthInput{"", "abc", "3", "21"} {
		_, err := svc.Generate(ctx, id, model.SessionGenerateRequest{Length: raw})
		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) || fieldErr.Field != FieldLength {
			t.Errorf("length %q: expected length FieldError, got %v", raw, err)
		}
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.State != model.StateGenerated || got.Password != first.Password || got.Config.Length != 10 {
		t.Errorf("session changed after failed requests: %+v", got)
	}
}

func TestSessionGenerateEmptyPoolStaysIdle(t *testing.T) {
	svc := newTestSessionService(time.Hour)
	ctx := context.Background()
	id := startSession(t, svc)

	if _, err := svc.SetOptions(ctx, id, model.OptionsRequest{Lowercase: boolPtr(false)}); err != nil {
		t.Fatalf("SetOptions() unexpected error: %v", err)
	}

	_, err := svc.Generate(ctx, id, model.SessionGenerateRequest{Length: "8"})
	if !errors.Is(err, crypto.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.State != model.StateIdle || got.Password != "" || got.Config.Length != 0 {
		t.Errorf("expected untouched idle session, got %+v", got)
	}
}

func TestSetOptionsKeepsPassword(t *testing.T) {
	svc := newTestSessionService(time.Hour)
	ctx := context.Background()
	id := startSession(t, svc)

	generated, err := svc.Generate(ctx, id, model.SessionGenerateRequest{Length: "6"})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	resp, err := svc.SetOptions(ctx, id, model.OptionsRequest{Symbols: boolPtr(true)})
	if err != nil {
		t.Fatalf("SetOptions() unexpected error: %v", err)
	}
	if resp.State != model.StateGenerated || resp.Password != generated.Password {
		t.Errorf("SetOptions() changed the result: %+v", resp)
	}
	if !resp.Config.Lowercase || !resp.Config.Symbols || resp.Config.Uppercase {
		t.Errorf("unexpected options: %+v", resp.Config)
	}
}

func TestReset(t *testing.T) {
	svc := newTestSessionService(time.Hour)
	ctx := context.Background()
	id := startSession(t, svc)

	if _, err := svc.SetOptions(ctx, id, model.OptionsRequest{
		Lowercase: boolPtr(false),
		Uppercase: boolPtr(true),
		Numbers:   boolPtr(true),
	}); err != nil {
		t.Fatalf("SetOptions() unexpected error: %v", err)
	}
	if _, err := svc.Generate(ctx, id, model.SessionGenerateRequest{Length: "15"}); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	resp, err := svc.Reset(ctx, id)
	if err != nil {
		t.Fatalf("Reset() unexpected error: %v", err)
	}
	if resp.State != model.StateIdle {
		t.Errorf("expected idle state, got %q", resp.State)
	}
	if resp.Config != crypto.DefaultConfig() {
		t.Errorf("expected default config, got %+v", resp.Config)
	}
	if resp.Password != "" {
		t.Errorf("expected password cleared, got %q", resp.Password)
	}

	// Reset from idle is allowed too.
	if _, err := svc.Reset(ctx, id); err != nil {
		t.Errorf("Reset() from idle unexpected error: %v", err)
	}
}

func TestUnknownAndExpiredSessions(t *testing.T) {
	ctx := context.Background()

	svc := newTestSessionService(time.Hour)
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	expiring := newTestSessionService(-time.Second)
	id := startSession(t, expiring)
	if _, err := expiring.Generate(ctx, id, model.SessionGenerateRequest{Length: "8"}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for expired session, got %v", err)
	}
}
