package api

import (
	"context"
	"fmt"

	"github.com/peakfit/fitcli/internal/types"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

type LoginResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    types.User `json:"user"`
}

// Login exchanges credentials for a token pair and persists it in the
// session store, making every subsequent call authenticated.
func (c *Client) Login(ctx context.Context, email, password string) (types.User, error) {
	var resp LoginResponse
	if err := c.post(ctx, "auth/login/", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return types.User{}, err
	}

	if err := c.session.Set(resp.Access, resp.Refresh); err != nil {
		return resp.User, fmt.Errorf("persist tokens: %w", err)
	}

	return resp.User, nil
}

// GoogleLogin exchanges a google id token for a session.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (types.User, error) {
	var resp LoginResponse
	body := map[string]string{"id_token": idToken}
	if err := c.post(ctx, "auth/google/", body, &resp); err != nil {
		return types.User{}, err
	}

	if err := c.session.Set(resp.Access, resp.Refresh); err != nil {
		return resp.User, fmt.Errorf("persist tokens: %w", err)
	}

	return resp.User, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (types.User, error) {
	var user types.User
	err := c.post(ctx, "auth/register/", req, &user)
	return user, err
}

func (c *Client) RegisterTrainer(ctx context.Context, req RegisterRequest) (types.User, error) {
	var user types.User
	err := c.post(ctx, "auth/register/trainer/", req, &user)
	return user, err
}

// Logout tells the backend to invalidate the refresh token and clears
// the local session either way; a failed backend call must not leave
// the client logged in.
func (c *Client) Logout(ctx context.Context) error {
	var logoutErr error
	if refresh, ok := c.session.Refresh(); ok {
		logoutErr = c.post(ctx, "auth/logout/", map[string]string{"refresh": refresh}, nil)
	}

	if err := c.session.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return logoutErr
}

func (c *Client) RequestOTP(ctx context.Context, email string) error {
	return c.post(ctx, "auth/request-otp/", map[string]string{"email": email}, nil)
}

func (c *Client) RequestPasswordResetOTP(ctx context.Context, email string) error {
	return c.post(ctx, "auth/reset-password/request-otp/", map[string]string{"email": email}, nil)
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{
		"email":        email,
		"otp":          otp,
		"new_password": newPassword,
	}
	return c.post(ctx, "auth/reset-password/confirm/", body, nil)
}

// AccountInfo returns the authenticated user's account record.
func (c *Client) AccountInfo(ctx context.Context) (types.User, error) {
	var user types.User
	err := c.get(ctx, "auth/info/", nil, &user)
	return user, err
}

func (c *Client) EditAccount(ctx context.Context, user types.User) (types.User, error) {
	var updated types.User
	err := c.put(ctx, "auth/info/edit/", user, &updated)
	return updated, err
}
