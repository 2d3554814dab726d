package api

import (
	"context"
	"net/http"
	"net/url"

	"tableside/internal/domain"
)

// AuthResponse is what login and register return.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

// Login exchanges credentials for a bearer token. Form-encoded, with
// the email in the username field per the backend's OAuth2 form.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	if email == "" {
		return AuthResponse{}, &ValidationError{Field: "email", Reason: "required"}
	}
	if password == "" {
		return AuthResponse{}, &ValidationError{Field: "password", Reason: "required"}
	}

	var resp AuthResponse
	err := c.doForm(ctx, "/auth/login", url.Values{
		"username": {email},
		"password": {password},
	}, &resp)
	return resp, err
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if req.Email == "" {
		return AuthResponse{}, &ValidationError{Field: "email", Reason: "required"}
	}
	if req.Password == "" {
		return AuthResponse{}, &ValidationError{Field: "password", Reason: "required"}
	}
	if req.Name == "" {
		return AuthResponse{}, &ValidationError{Field: "name", Reason: "required"}
	}

	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", req, false, &resp)
	return resp, err
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, true, &user)
	return user, err
}
