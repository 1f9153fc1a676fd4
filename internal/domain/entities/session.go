package entities

import "encoding/json"

// User is the opaque user record returned by the backend.
type User map[string]any

// Email returns the "email" field when present.
func (u User) Email() string {
	if u == nil {
		return ""
	}
	s, _ := u["email"].(string)
	return s
}

// Session is the current authentication state.
// IsAuthenticated is true exactly when Token is non-empty.
type Session struct {
	Token           string
	User            User
	IsAuthenticated bool
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        User            `json:"user,omitempty"`
	Raw         json.RawMessage `json:"-"`
}
