package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
)

// Login exchanges credentials for a token. Client errors come back as a
// ValidationError carrying the backend's message.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := c.do(ctx, "login", http.MethodPost, c.endpoint("/users/login", nil), "", req, &res); err != nil {
		return nil, formError(err)
	}
	return &res, nil
}

// Signup registers a new account. The result has no token when the backend
// wants the address verified first.
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := c.do(ctx, "signup", http.MethodPost, c.endpoint("/users/signup", nil), "", req, &res); err != nil {
		return nil, formError(err)
	}
	return &res, nil
}

// Me returns the viewer behind the token
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "me", http.MethodGet, c.endpoint("/users/me", nil), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// formError keeps 404 as a StatusError so the login page can switch to
// signup, and turns other 4xx answers into messages for the form.
func formError(err error) error {
	var status *domain.StatusError
	if !errors.As(err, &status) {
		return err
	}
	if status.Code == http.StatusNotFound || status.Code < 400 || status.Code > 499 {
		return err
	}

	msg := status.Message
	if msg == "" {
		msg = "An error occurred. Please try again."
	}
	return domain.NewValidationError("", msg)
}
