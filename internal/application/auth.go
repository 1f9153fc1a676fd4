package application

import (
	"context"
	"log/slog"
	"strings"

	"ishakiro/internal/domain"
	"ishakiro/internal/domain/entities"
	"ishakiro/internal/ports/output"
)

type AuthService struct {
	gateway output.AuthGateway
	session output.SessionRepository
	logger  *slog.Logger
}

func NewAuthService(
	gateway output.AuthGateway,
	session output.SessionRepository,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		gateway: gateway,
		session: session,
		logger:  logger,
	}
}

// Login exchanges credentials for a session and returns the backend response unchanged.
// The session is only touched once the backend accepted the credentials.
// A persistence failure is returned after the in-memory session was updated.
func (s *AuthService) Login(ctx context.Context, identifier, secret string) (*entities.LoginResponse, error) {
	resp, err := s.gateway.Login(ctx, strings.TrimSpace(identifier), secret)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, &domain.AuthError{Message: domain.MsgLoginFailed}
	}

	user := resp.User
	if user == nil {
		user = entities.User{"email": strings.TrimSpace(identifier)}
	}
	if err := s.session.Set(ctx, resp.AccessToken, user); err != nil {
		return resp, err
	}
	s.logger.Info("auth: logged in", "user", user.Email())
	return resp, nil
}

// Logout clears the session. It never calls the backend.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("auth: logged out")
	return nil
}

func (s *AuthService) Session() entities.Session {
	return s.session.Snapshot()
}
