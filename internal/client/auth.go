package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/csesa/portal-client/internal/model"
)

// PasswordLogin exchanges email and password for a token pair and user
// record. The response is persisted by the session facade, not here.
func (c *Client) PasswordLogin(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.doBare(ctx, http.MethodPost, "/token/", model.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	var resp model.RefreshResponse
	err := c.doBare(ctx, http.MethodPost, "/token/refresh/", model.RefreshRequest{Refresh: refreshToken}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Access, nil
}

// GoogleAuthURL asks the backend for the provider authorization URL. The
// state value is passed through opaquely and comes back on the callback.
func (c *Client) GoogleAuthURL(ctx context.Context, redirectURI, state string) (string, error) {
	q := url.Values{}
	q.Set("redirect_uri", redirectURI)
	q.Set("state", state)

	var resp model.AuthURLResponse
	err := c.doBare(ctx, http.MethodGet, "/auth/google/?"+q.Encode(), nil, &resp)
	if err != nil {
		return "", err
	}
	if resp.AuthURL == "" {
		return "", fmt.Errorf("auth url missing from response")
	}
	return resp.AuthURL, nil
}

// ExchangeGoogleCode trades the authorization code for tokens and the user
// record.
func (c *Client) ExchangeGoogleCode(ctx context.Context, code, state string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.doBare(ctx, http.MethodPost, "/auth/google/callback/", model.CallbackRequest{Code: code, State: state}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
