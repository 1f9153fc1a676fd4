package application

import (
	"context"
	"errors"
	"testing"

	"ishakiro/internal/domain"
	"ishakiro/internal/domain/entities"
	"ishakiro/internal/infrastructure/state"
	"ishakiro/internal/infrastructure/storage"
)

type fakeGateway struct {
	resp *entities.LoginResponse
	err  error

	identifier string
	secret     string
}

func (f *fakeGateway) Login(ctx context.Context, identifier, secret string) (*entities.LoginResponse, error) {
	f.identifier, f.secret = identifier, secret
	return f.resp, f.err
}

func newAuth(gw *fakeGateway) (*AuthService, *state.SessionStore, *storage.Memory) {
	mem := storage.NewMemory()
	session := state.NewSessionStore(mem, nil)
	return NewAuthService(gw, session, nil), session, mem
}

func TestAuthService_LoginSetsSession(t *testing.T) {
	gw := &fakeGateway{resp: &entities.LoginResponse{
		AccessToken: "jwt",
		TokenType:   "bearer",
		User:        entities.User{"email": "a@b.rw", "id": float64(3)},
	}}
	svc, session, mem := newAuth(gw)

	resp, err := svc.Login(context.Background(), " a@b.rw ", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp != gw.resp {
		t.Error("expected the gateway response to be returned unchanged")
	}
	if gw.identifier != "a@b.rw" || gw.secret != "secret" {
		t.Errorf("gateway got %q / %q", gw.identifier, gw.secret)
	}

	sess := svc.Session()
	if !sess.IsAuthenticated || sess.Token != "jwt" || sess.User["id"] != float64(3) {
		t.Fatalf("unexpected session %+v", sess)
	}
	if session.Token() != "jwt" {
		t.Errorf("token source = %q", session.Token())
	}
	if v, ok, _ := mem.Get(context.Background(), state.KeyToken); !ok || v != "jwt" {
		t.Errorf("stored token = %q, %v", v, ok)
	}
}

func TestAuthService_LoginBuildsUserFromIdentifier(t *testing.T) {
	gw := &fakeGateway{resp: &entities.LoginResponse{AccessToken: "jwt"}}
	svc, _, _ := newAuth(gw)

	if _, err := svc.Login(context.Background(), "a@b.rw", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := svc.Session().User.Email(); got != "a@b.rw" {
		t.Errorf("user email = %q", got)
	}
}

func TestAuthService_LoginFailureKeepsSession(t *testing.T) {
	authErr := &domain.AuthError{Status: 401, Message: "Invalid credentials"}
	gw := &fakeGateway{err: authErr}
	svc, session, _ := newAuth(gw)
	_ = session.Set(context.Background(), "old", entities.User{"email": "old@b.rw"})

	_, err := svc.Login(context.Background(), "a@b.rw", "bad")
	if !errors.Is(err, authErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if svc.Session().Token != "old" {
		t.Errorf("session changed on failed login: %+v", svc.Session())
	}
}

func TestAuthService_LoginWithoutToken(t *testing.T) {
	gw := &fakeGateway{resp: &entities.LoginResponse{TokenType: "bearer"}}
	svc, _, _ := newAuth(gw)

	_, err := svc.Login(context.Background(), "a@b.rw", "secret")
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) || authErr.Message != domain.MsgLoginFailed {
		t.Fatalf("expected login failed AuthError, got %v", err)
	}
	if svc.Session().IsAuthenticated {
		t.Error("session authenticated without token")
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{resp: &entities.LoginResponse{AccessToken: "jwt"}}
	svc, _, mem := newAuth(gw)
	if _, err := svc.Login(ctx, "a@b.rw", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	sess := svc.Session()
	if sess.Token != "" || sess.User != nil || sess.IsAuthenticated {
		t.Fatalf("session not cleared: %+v", sess)
	}
	for _, key := range []string{state.KeyToken, state.KeyUser} {
		if _, ok, _ := mem.Get(ctx, key); ok {
			t.Errorf("%s still in storage", key)
		}
	}

	// logging out twice is harmless
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}
