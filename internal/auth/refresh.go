package auth

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// TokenStore is the slice of the credential store the coordinator touches.
type TokenStore interface {
	RefreshToken() (string, bool)
	SetAccessToken(token string) error
}

// RefreshFunc performs the refresh-token exchange against the backend.
type RefreshFunc func(ctx context.Context, refreshToken string) (string, error)

type refreshResult struct {
	token string
	err   error
}

// Coordinator guarantees that at most one refresh exchange is in flight no
// matter how many requests hit a 401 concurrently. The first caller while
// idle performs the exchange; everyone else queues and receives the same
// outcome when it settles.
type Coordinator struct {
	store     TokenStore
	exchange  RefreshFunc
	onFailure func()

	mu       sync.Mutex
	inFlight bool
	pending  []chan refreshResult
}

func NewCoordinator(store TokenStore, exchange RefreshFunc) *Coordinator {
	return &Coordinator{store: store, exchange: exchange}
}

// Refresh returns a fresh access token, already persisted to the store.
// On failure every queued caller gets the same error and the failure hook
// clears the session.
func (c *Coordinator) Refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.inFlight {
		ch := make(chan refreshResult, 1)
		c.pending = append(c.pending, ch)
		c.mu.Unlock()
		select {
		case res := <-ch:
			return res.token, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.inFlight = true
	c.mu.Unlock()

	token, err := c.doExchange(ctx)

	// Capture and reset the queue under the lock before delivering, so a
	// caller arriving during the flush starts a new cycle instead of
	// waiting on a queue that has already settled.
	c.mu.Lock()
	waiters := c.pending
	c.pending = nil
	c.inFlight = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- refreshResult{token: token, err: err}
	}

	if err != nil && c.onFailure != nil {
		log.Printf("auth: refresh failed, clearing session: %v", err)
		c.onFailure()
	}
	return token, err
}

func (c *Coordinator) doExchange(ctx context.Context) (string, error) {
	refresh, ok := c.store.RefreshToken()
	if !ok {
		return "", ErrNoRefreshToken
	}
	token, err := c.exchange(ctx, refresh)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: empty access token in response", ErrRefreshFailed)
	}
	if err := c.store.SetAccessToken(token); err != nil {
		return "", err
	}
	return token, nil
}
