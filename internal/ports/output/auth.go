package output

import (
	"context"

	"ishakiro/internal/domain/entities"
)

// TokenSource exposes the current bearer token, "" when logged out.
type TokenSource interface {
	Token() string
}

// AuthGateway performs the credential exchange with the backend.
type AuthGateway interface {
	Login(ctx context.Context, identifier, secret string) (*entities.LoginResponse, error)
}

// SessionRepository holds the current session and its durable mirror.
type SessionRepository interface {
	Set(ctx context.Context, token string, user entities.User) error
	Clear(ctx context.Context) error
	Snapshot() entities.Session
}

// LocaleRepository holds the active language code and its durable mirror.
type LocaleRepository interface {
	Load(ctx context.Context, accept func(code string) bool) error
	Code() string
	Set(ctx context.Context, code string) error
}
