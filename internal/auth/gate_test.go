package auth

import (
	"context"
	"testing"

	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/shared"
	mocks "github.com/cineniche/cinectl/internal/testing"
)

func TestGate(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts Checking", func(t *testing.T) {
		gate := NewGate(&mocks.MockService{}, nil)
		if gate.State() != Checking {
			t.Errorf("expected checking, got %s", gate.State())
		}
		if gate.Session() != nil {
			t.Error("expected nil session before probe")
		}
	})

	t.Run("Probe Settles Authorized", func(t *testing.T) {
		svc := &mocks.MockService{
			Session: &models.Session{Email: "admin@cineniche.com", Roles: []string{"Administrator"}},
		}
		gate := NewGate(svc, nil)

		if state := gate.Probe(ctx); state != Authorized {
			t.Errorf("expected authorized, got %s", state)
		}
		if gate.Session() == nil || gate.Session().Email != "admin@cineniche.com" {
			t.Error("expected settled session")
		}
	})

	t.Run("Probe Settles Unauthorized On Error", func(t *testing.T) {
		svc := &mocks.MockService{PingErr: shared.ErrNotAuthenticated}
		gate := NewGate(svc, nil)

		if state := gate.Probe(ctx); state != Unauthorized {
			t.Errorf("expected unauthorized, got %s", state)
		}
		if gate.Session() != nil {
			t.Error("expected nil session after failed probe")
		}
	})

	t.Run("Second Probe Is A No-Op", func(t *testing.T) {
		svc := &mocks.MockService{PingErr: shared.ErrServiceUnavailable}
		gate := NewGate(svc, nil)
		gate.Probe(ctx)

		svc.PingErr = nil
		if state := gate.Probe(ctx); state != Unauthorized {
			t.Errorf("expected settled gate to stay unauthorized, got %s", state)
		}
	})

	t.Run("RequireAuth", func(t *testing.T) {
		t.Run("Renders When Authorized", func(t *testing.T) {
			gate := NewGate(&mocks.MockService{}, nil)
			gate.Probe(ctx)
			if d := gate.RequireAuth(); d != Render {
				t.Errorf("expected render, got %s", d)
			}
		})

		t.Run("Redirects To Login When Unauthorized", func(t *testing.T) {
			gate := NewGate(&mocks.MockService{PingErr: shared.ErrNotAuthenticated}, nil)
			gate.Probe(ctx)
			if d := gate.RequireAuth(); d != RedirectLogin {
				t.Errorf("expected login redirect, got %s", d)
			}
		})

		t.Run("Redirects To Login While Checking", func(t *testing.T) {
			gate := NewGate(&mocks.MockService{}, nil)
			if d := gate.RequireAuth(); d != RedirectLogin {
				t.Errorf("expected login redirect before probe, got %s", d)
			}
		})
	})

	t.Run("RequireRole", func(t *testing.T) {
		t.Run("Renders With Matching Role", func(t *testing.T) {
			svc := &mocks.MockService{
				Session: &models.Session{Email: "admin@cineniche.com", Roles: []string{"Viewer", "Administrator"}},
			}
			gate := NewGate(svc, nil)
			gate.Probe(ctx)
			if d := gate.RequireRole("Administrator"); d != Render {
				t.Errorf("expected render, got %s", d)
			}
		})

		t.Run("Viewer Without Role Is Redirected To Unauthorized", func(t *testing.T) {
			gate := NewGate(&mocks.MockService{}, nil)
			gate.Probe(ctx)
			if d := gate.RequireRole("Administrator"); d != RedirectUnauthorized {
				t.Errorf("expected unauthorized redirect, got %s", d)
			}
		})

		t.Run("Role Match Is Case Sensitive", func(t *testing.T) {
			svc := &mocks.MockService{
				Session: &models.Session{Email: "admin@cineniche.com", Roles: []string{"administrator"}},
			}
			gate := NewGate(svc, nil)
			gate.Probe(ctx)
			if d := gate.RequireRole("Administrator"); d != RedirectUnauthorized {
				t.Errorf("expected unauthorized redirect for case mismatch, got %s", d)
			}
		})

		t.Run("No Session Redirects To Login Not Unauthorized", func(t *testing.T) {
			gate := NewGate(&mocks.MockService{PingErr: shared.ErrNotAuthenticated}, nil)
			gate.Probe(ctx)
			if d := gate.RequireRole("Administrator"); d != RedirectLogin {
				t.Errorf("expected login redirect, got %s", d)
			}
		})
	})
}
