package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cineniche/cinectl/internal/services"
	"github.com/cineniche/cinectl/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in with email and password, storing the backend cookie on
// the runner's HTTP client for the rest of the process.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")
	persistent := cmd.Bool("remember")

	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("signing in", "email", email, "persistent", persistent)

	if err := r.service.Login(ctx, email, password, persistent); err != nil {
		return err
	}

	return r.writePlain("✓ Signed in as %s\n", email)
}

// AuthRegister creates a new account, then signs in with the same credentials.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("registering account", "email", email)

	if err := r.service.Register(ctx, email, password); err != nil {
		return err
	}

	if err := r.service.Login(ctx, email, password, false); err != nil {
		r.writePlain("✓ Account created; sign in with `cinectl auth login`\n")
		return nil
	}

	return r.writePlain("✓ Account created and signed in as %s\n", email)
}

// AuthStatus probes the session and prints who is signed in.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	session, err := r.service.Ping(ctx)
	if err != nil {
		r.logger.Debug("session probe failed", "error", err)
		return r.writePlain("✗ Not signed in\n")
	}

	if cmd.Bool("json") {
		return r.writeJSON(session, true)
	}

	r.writePlain("✓ Signed in\n")
	r.writePlain("Email: %s\n", session.Email)
	r.writePlain("Roles: %s\n", strings.Join(session.Roles, ", "))
	return nil
}

// AuthLogout ends the current session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.service.Logout(ctx); err != nil {
		return err
	}

	return r.writePlain("✓ Signed out\n")
}

// AuthGoogle runs the Google OAuth2 sign-in flow and trades the credential
// for a backend session.
func (r *Runner) AuthGoogle(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	config := r.config
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		}
	}

	google := config.Credentials.Google
	signIn, err := services.NewGoogleSignIn(google.ClientID, google.ClientSecret, google.RedirectURI, r.api)
	if err != nil {
		return err
	}

	r.logger.Info("starting Google sign-in, waiting for browser callback")

	if err := signIn.Run(ctx); err != nil {
		return err
	}

	session, err := r.service.Ping(ctx)
	if err != nil {
		return fmt.Errorf("%w: sign-in completed but session probe failed: %v", shared.ErrAuthFailed, err)
	}

	return r.writePlain("✓ Signed in as %s\n", session.Email)
}
