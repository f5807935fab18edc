// Google third-party sign-in for the CineNiche backend.
//
// The authorization-code flow runs against Google's OAuth2 endpoints with a
// loopback callback listener; the resulting ID token is handed to the backend,
// which answers with its own session cookie. Tokens are never stored locally.
package services

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/cineniche/cinectl/internal/server"
	"github.com/cineniche/cinectl/internal/shared"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	googleAuthPath = "/auth/google"
)

// GoogleSignIn drives the Google OAuth2 sign-in flow for a CineNiche session.
type GoogleSignIn struct {
	config  *oauth2.Config
	service *CineNicheService
}

// NewGoogleSignIn creates the flow from configured credentials.
func NewGoogleSignIn(clientID, clientSecret, redirectURI string, service *CineNicheService) (*GoogleSignIn, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: google client_id and client_secret are required", shared.ErrMissingCredentials)
	}
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	return &GoogleSignIn{config: config, service: service}, nil
}

// AuthURL returns the Google authorization URL for the given state token.
func (g *GoogleSignIn) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Run executes the full sign-in: opens the browser, waits for the callback on
// the redirect URI's port, exchanges the code, and trades the ID token for a
// backend session. Blocks until the flow settles or ctx is done.
func (g *GoogleSignIn) Run(ctx context.Context) error {
	redirect, err := url.Parse(g.config.RedirectURL)
	if err != nil {
		return fmt.Errorf("%w: bad redirect_uri: %v", shared.ErrInvalidConfig, err)
	}

	state := shared.GenerateID()
	handler := server.NewOAuthHandler(g.config, state)

	router := server.NewBasicRouter()
	router.Handler(handler)

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}

	srv := &http.Server{Handler: router}
	go srv.Serve(listener)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := shared.OpenBrowser(g.AuthURL(state)); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case result := <-handler.Result():
		if result.Error() != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
		}
		return g.exchangeForSession(ctx, result.Token)
	}
}

// exchangeForSession posts the Google credential to the backend, which sets
// the session cookie on success.
func (g *GoogleSignIn) exchangeForSession(ctx context.Context, token *oauth2.Token) error {
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return fmt.Errorf("%w: google token response missing id_token", shared.ErrAuthFailed)
	}

	payload := struct {
		Credential string `json:"credential"`
	}{Credential: idToken}

	err := g.service.doRequest(ctx, http.MethodPost, googleAuthPath, payload, nil, requestOpts{skipAuthRedirect: true})
	if err != nil {
		return fmt.Errorf("%w: backend rejected google credential: %v", shared.ErrAuthFailed, err)
	}

	g.service.guard.Reset()
	return nil
}
