package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"admin-console/models"
)

// Login exchanges credentials for a token pair. The caller decides whether to
// install the pair into the session store.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("failed to marshal login request: %w", err)
	}

	var pair models.TokenPair
	err = c.do(ctx, &apiRequest{
		method:      http.MethodPost,
		path:        "/auth/login/",
		body:        body,
		contentType: "application/json",
		noAuth:      true,
	}, &pair)
	if err != nil {
		return models.TokenPair{}, err
	}
	return pair, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to marshal register request: %w", err)
	}

	var user models.User
	err = c.do(ctx, &apiRequest{
		method:      http.MethodPost,
		path:        "/auth/register/",
		body:        body,
		contentType: "application/json",
		noAuth:      true,
	}, &user)
	return user, err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.getJSON(ctx, "/auth/me/", nil, &user)
	return user, err
}

// UpdateMe patches the authenticated user's profile.
func (c *Client) UpdateMe(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	var user models.User
	err := c.sendJSON(ctx, http.MethodPatch, "/auth/me/update/", req, &user)
	return user, err
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.sendJSON(ctx, http.MethodPut, "/auth/password/change/", req, nil)
}
