package backend

import (
	"context"
	"net/http"

	"github.com/tradevista/admin-console/internal/models"
)

// LoginResult is the auth payload inside a successful login envelope.
type LoginResult struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	Role         string      `json:"role"`
	UserID       string      `json:"_id"`
	User         models.User `json:"user"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ForgotPassword asks the backend to mail a reset OTP.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/auth/forget-password", "", payload, nil)
}

// ResetPassword completes the OTP reset flow.
func (c *Client) ResetPassword(ctx context.Context, email, otp, password string) error {
	payload := map[string]string{"email": email, "otp": otp, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password", "", payload, nil)
}

// ChangePassword updates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	payload := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.doJSON(ctx, http.MethodPost, "/auth/change-password", token, payload, nil)
}
