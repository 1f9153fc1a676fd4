// Package cli is the command-line adapter of the Ishakiro client.
package cli

import (
	"io"
	"log/slog"

	"ishakiro/internal/adapters/api"
	"ishakiro/internal/ports/input"
)

// Handler runs commands against the use cases and the backend client.
type Handler struct {
	auth   input.AuthUseCase
	locale input.LocaleUseCase
	client *api.Client
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger
}

// NewHandler creates a Handler writing results to out and user-facing errors to errOut.
func NewHandler(
	auth input.AuthUseCase,
	locale input.LocaleUseCase,
	client *api.Client,
	out, errOut io.Writer,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		auth:   auth,
		locale: locale,
		client: client,
		out:    out,
		errOut: errOut,
		logger: logger,
	}
}
