package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"ishakiro/internal/domain"
	"ishakiro/internal/domain/entities"
	"ishakiro/internal/ports/output"
)

var _ output.AuthGateway = (*AuthResource)(nil)

// AuthResource covers /api/auth.
type AuthResource struct{ c *Client }

func (r *AuthResource) Register(ctx context.Context, reg entities.Registration) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/auth/register", WithMethod(http.MethodPost), WithJSONBody(reg))
}

// Login exchanges credentials for a token. The body is form-encoded (username, password),
// unlike every other endpoint. Backend rejections become *domain.AuthError.
func (r *AuthResource) Login(ctx context.Context, identifier, secret string) (*entities.LoginResponse, error) {
	raw, err := r.c.Request(ctx, "/api/auth/login",
		WithMethod(http.MethodPost),
		WithFormBody(url.Values{"username": {identifier}, "password": {secret}}),
		WithoutAuth(),
	)
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		msg := reqErr.Detail
		if msg == "" {
			msg = domain.MsgLoginFailed
		}
		return nil, &domain.AuthError{Status: reqErr.Status, Message: msg}
	}
	if err != nil {
		return nil, err
	}

	resp := &entities.LoginResponse{Raw: raw}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, resp); err != nil {
			return nil, fmt.Errorf("decode login response: %w", err)
		}
	}
	return resp, nil
}

// ItemsResource covers /api/items.
type ItemsResource struct{ c *Client }

func (r *ItemsResource) Create(ctx context.Context, item entities.NewItem) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/items/", WithMethod(http.MethodPost), WithJSONBody(item))
}

func (r *ItemsResource) List(ctx context.Context) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/items/")
}

func (r *ItemsResource) Get(ctx context.Context, id int64) (json.RawMessage, error) {
	return r.c.Request(ctx, fmt.Sprintf("/api/items/%d", id))
}

func (r *ItemsResource) Matches(ctx context.Context, id int64) (json.RawMessage, error) {
	return r.c.Request(ctx, fmt.Sprintf("/api/items/%d/matches", id))
}

func (r *ItemsResource) Delete(ctx context.Context, id int64) (json.RawMessage, error) {
	return r.c.Request(ctx, fmt.Sprintf("/api/items/%d", id), WithMethod(http.MethodDelete))
}

// MessagesResource covers /api/messages.
type MessagesResource struct{ c *Client }

func (r *MessagesResource) Send(ctx context.Context, msg entities.NewMessage) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/messages/", WithMethod(http.MethodPost), WithJSONBody(msg))
}

func (r *MessagesResource) List(ctx context.Context) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/messages/")
}

func (r *MessagesResource) MarkRead(ctx context.Context, id int64) (json.RawMessage, error) {
	return r.c.Request(ctx, fmt.Sprintf("/api/messages/%d/read", id), WithMethod(http.MethodPut))
}

// AdminResource covers /api/admin.
type AdminResource struct{ c *Client }

func (r *AdminResource) Stats(ctx context.Context) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/admin/stats")
}

func (r *AdminResource) Commissions(ctx context.Context) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/admin/commissions")
}

func (r *AdminResource) CreateCommission(ctx context.Context, itemID int64, amount float64) (json.RawMessage, error) {
	return r.c.Request(ctx, fmt.Sprintf("/api/admin/commissions/%d", itemID),
		WithMethod(http.MethodPost),
		WithJSONBody(map[string]float64{"amount": amount}),
	)
}

func (r *AdminResource) Users(ctx context.Context) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/admin/users")
}

// AnonymousResource covers /api/anonymous, usable without logging in.
type AnonymousResource struct{ c *Client }

func (r *AnonymousResource) Report(ctx context.Context, report entities.AnonymousReport) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/anonymous/report", WithMethod(http.MethodPost), WithJSONBody(report))
}

func (r *AnonymousResource) Items(ctx context.Context) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/anonymous/items")
}

func (r *AnonymousResource) Track(ctx context.Context, code string) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/anonymous/track/"+url.PathEscape(code))
}

func (r *AnonymousResource) Pricing(ctx context.Context) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/anonymous/pricing")
}

func (r *AnonymousResource) CategoryPricing(ctx context.Context, category string) (json.RawMessage, error) {
	return r.c.Request(ctx, "/api/anonymous/pricing/"+url.PathEscape(category))
}
