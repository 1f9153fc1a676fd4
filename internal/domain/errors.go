package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned by Code.
const (
	CodeConnectionFailed   = "connection_failed"
	CodeRequestFailed      = "request_failed"
	CodeAuthFailed         = "auth_failed"
	CodeStorageUnavailable = "storage_unavailable"
)

// Fixed user-facing texts used when the backend gives no usable detail.
const (
	MsgCannotConnect      = "Cannot connect to server. Please make sure the backend is running."
	MsgSomethingWentWrong = "Something went wrong"
	MsgInvalidCredentials = "Invalid credentials. Please check your email and password."
	MsgInvalidRequest     = "Invalid request. Please check your input."
	MsgNotFound           = "Resource not found."
	MsgServerError        = "Server error. Please try again later."
	MsgLoginFailed        = "Login failed"
)

// ErrStorageUnavailable is returned when a durable store is used after Close or was never opened.
var ErrStorageUnavailable = errors.New("durable storage unavailable")

// ErrUnknownLanguage is returned when switching to a language without a translation table.
var ErrUnknownLanguage = errors.New("unknown language")

// ConnectionError reports that the backend could not be reached at all.
type ConnectionError struct {
	BaseURL string
	Cause   error
}

func (e *ConnectionError) Error() string { return MsgCannotConnect }

func (e *ConnectionError) Unwrap() error { return e.Cause }

// RequestError is a non-2xx response from the backend.
// Detail holds the server-provided text when the body carried one.
type RequestError struct {
	Status  int
	Message string
	Detail  string
}

func (e *RequestError) Error() string { return e.Message }

// AuthError is a failed login.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// StatusMessage returns the fixed text for a status whose error body could not be parsed.
func StatusMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return MsgInvalidCredentials
	case http.StatusBadRequest:
		return MsgInvalidRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusInternalServerError:
		return MsgServerError
	default:
		return fmt.Sprintf("Error: %s", http.StatusText(status))
	}
}

// Code extracts the stable error code of err, or "" when err is not a domain error.
func Code(err error) string {
	var (
		connErr *ConnectionError
		reqErr  *RequestError
		authErr *AuthError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return CodeAuthFailed
	case errors.As(err, &reqErr):
		return CodeRequestFailed
	case errors.As(err, &connErr):
		return CodeConnectionFailed
	case errors.Is(err, ErrStorageUnavailable):
		return CodeStorageUnavailable
	default:
		return ""
	}
}
