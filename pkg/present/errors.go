// Package present turns errors into text for the end user.
package present

import (
	"errors"

	"ishakiro/internal/domain"
)

// Translate renders a message key in the active language.
type Translate func(key string, params map[string]any) string

// TranslateDomainError maps a domain error code to a translation key.
func TranslateDomainError(code string) string {
	switch code {
	case domain.CodeConnectionFailed:
		return "errors.cannotConnect"
	case domain.CodeAuthFailed:
		return "errors.loginFailed"
	case domain.CodeStorageUnavailable:
		return "errors.storageUnavailable"
	default:
		return "errors.somethingWentWrong"
	}
}

// ErrorMessage resolves err to the text shown to the user.
// Backend-provided texts of request and login failures are shown verbatim;
// everything else goes through the translation table.
func ErrorMessage(err error, t Translate) string {
	if err == nil {
		return ""
	}
	var (
		reqErr  *domain.RequestError
		authErr *domain.AuthError
	)
	switch {
	case errors.As(err, &authErr) && authErr.Message != "" && authErr.Message != domain.MsgLoginFailed:
		return authErr.Message
	case errors.As(err, &reqErr) && reqErr.Message != "":
		return reqErr.Message
	}
	return t(TranslateDomainError(domain.Code(err)), nil)
}
