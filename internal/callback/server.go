// Package callback runs the loopback HTTP server that receives the OAuth
// provider redirect and completes the login through the session facade.
package callback

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/csesa/portal-client/internal/auth"
	"github.com/csesa/portal-client/internal/model"
)

// Result is the outcome of one login attempt.
type Result struct {
	Response *model.AuthResponse
	Err      error
}

// Server binds the configured loopback address and serves the redirect URI
// path. The first callback outcome, good or bad, is delivered on the
// result channel; later hits only get the HTML page.
type Server struct {
	session *auth.Session
	httpSrv *http.Server
	results chan Result
}

func New(session *auth.Session, addr, redirectURI string) (*Server, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("parse redirect uri: %w", err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	s := &Server{
		session: session,
		results: make(chan Result, 1),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET(path, s.handleCallback)

	s.httpSrv = &http.Server{Addr: addr, Handler: router}
	return s, nil
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.deliver(Result{Err: fmt.Errorf("callback server: %w", err)})
		}
	}()
}

// Wait blocks until a callback outcome arrives or ctx is done.
func (s *Server) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-s.results:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) handleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	providerErr := c.Query("error")

	resp, err := s.session.CompleteLogin(c.Request.Context(), code, state, providerErr)
	if err != nil {
		log.Printf("callback: login rejected: %v", err)
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", errorPage(err))
		s.deliver(Result{Err: err})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", successPage(resp.User))
	s.deliver(Result{Response: resp})
}

func (s *Server) deliver(res Result) {
	select {
	case s.results <- res:
	default:
	}
}
