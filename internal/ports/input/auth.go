package input

import (
	"context"

	"ishakiro/internal/domain/entities"
)

type AuthUseCase interface {
	Login(ctx context.Context, identifier, secret string) (*entities.LoginResponse, error)
	Logout(ctx context.Context) error
	Session() entities.Session
}
