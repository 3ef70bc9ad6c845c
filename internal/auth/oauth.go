package auth

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/csesa/portal-client/internal/client"
	"github.com/csesa/portal-client/internal/model"
	"github.com/csesa/portal-client/internal/store"
)

// stateBundle is the value carried through the provider in the state
// parameter: the anti-CSRF nonce plus the path to return to after login.
type stateBundle struct {
	State       string `json:"state"`
	RedirectURI string `json:"redirect_uri"`
}

// Flow drives the authorization-code dance: Initiate before the provider
// redirect, HandleCallback when the code comes back.
type Flow struct {
	api         *client.Client
	store       *store.Store
	redirectURI string
}

func NewFlow(api *client.Client, st *store.Store, redirectURI string) *Flow {
	return &Flow{api: api, store: st, redirectURI: redirectURI}
}

// Initiate generates the nonce, persists the single pending login attempt
// and returns the provider authorization URL to open. The state record is
// on disk before the URL leaves this process, so the callback can never
// outrun its own setup.
func (f *Flow) Initiate(ctx context.Context, returnPath string) (string, error) {
	if returnPath == "" {
		returnPath = "/"
	}
	nonce := uuid.NewString()
	bundle, err := json.Marshal(stateBundle{State: nonce, RedirectURI: returnPath})
	if err != nil {
		return "", err
	}

	err = f.store.SaveOAuthState(store.OAuthState{
		Nonce:       nonce,
		ReturnPath:  returnPath,
		RedirectURI: f.redirectURI,
	})
	if err != nil {
		return "", err
	}

	return f.api.GoogleAuthURL(ctx, f.redirectURI, string(bundle))
}

// HandleCallback verifies the returned state against the pending attempt
// and exchanges the code for tokens. The nonce comparison happens before
// any backend call; it is the only defense against a forged callback. The
// pending record is deleted as soon as the comparison passes — one attempt
// per nonce, whatever the outcome.
func (f *Flow) HandleCallback(ctx context.Context, code, stateParam, providerErr string) (*model.AuthResponse, error) {
	var bundle stateBundle
	if err := json.Unmarshal([]byte(stateParam), &bundle); err != nil || bundle.State == "" {
		return nil, ErrInvalidStateFormat
	}

	pending, ok := f.store.OAuthState()
	if !ok || pending.Nonce != bundle.State {
		return nil, ErrStateMismatch
	}
	if err := f.store.DeleteOAuthState(); err != nil {
		return nil, err
	}

	if providerErr != "" {
		return nil, &ProviderError{Message: providerErr}
	}
	if code == "" {
		return nil, &ProviderError{Message: "no authorization code received"}
	}

	resp, err := f.api.ExchangeGoogleCode(ctx, code, stateParam)
	if err != nil {
		// No partial credential state survives a failed exchange.
		if clearErr := f.store.Clear(); clearErr != nil {
			return nil, clearErr
		}
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		if clearErr := f.store.Clear(); clearErr != nil {
			return nil, clearErr
		}
		return nil, ErrInvalidExchangeResponse
	}

	if err := f.store.SaveTokens(resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, err
	}
	if err := f.store.SaveUser(*resp.User); err != nil {
		return nil, err
	}

	if resp.RedirectURI == "" {
		resp.RedirectURI = bundle.RedirectURI
	}
	return resp, nil
}
