package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wingwing524/wallet-client/internal/core"
)

// AuthResponse is the token-and-profile payload returned by login and
// register.
type AuthResponse struct {
	Token string    `json:"token"`
	User  core.User `json:"user"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RegisterRequest carries the fields for account creation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The identifier may be a
// username or an email address. The token is NOT installed on the client;
// the session manager owns that step.
func (c *Client) Login(ctx context.Context, identifier, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Identifier: identifier,
		Password:   password,
	}, &resp)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("login: %w", err)
	}
	slog.InfoContext(ctx, "Login succeeded", "username", resp.User.Username)
	return resp, nil
}

// Register creates an account and returns the initial token and profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return AuthResponse{}, fmt.Errorf("register: %w", err)
	}
	return resp, nil
}

// Logout invalidates the server-side session for the current token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (core.User, error) {
	var resp struct {
		User core.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &resp); err != nil {
		return core.User{}, fmt.Errorf("fetch profile: %w", err)
	}
	return resp.User, nil
}
