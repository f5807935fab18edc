// Package auth implements the session probe and the client-side
// authorization gate.
//
// A [Gate] is constructed per mount of a gated view, performs exactly one
// session probe, and then answers routing decisions from the settled state.
// It never polls and never refreshes; remount to re-check. The gate is a UX
// convenience, the backend still enforces real authorization on every call.
package auth

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/services"
)

// State enumerates the gate's lifecycle states.
type State int

const (
	// Checking means the session probe is still in flight.
	Checking State = iota
	// Authorized means the probe settled with a valid session.
	Authorized
	// Unauthorized means the probe settled without one.
	Unauthorized
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Decision is the gate's answer for a given route requirement.
type Decision int

const (
	// Render means the gated view may be shown.
	Render Decision = iota
	// RedirectLogin means the user must authenticate first.
	RedirectLogin
	// RedirectUnauthorized means the user is authenticated but lacks the
	// required role.
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// Gate holds the result of a single session probe.
type Gate struct {
	service services.Service
	logger  *log.Logger
	state   State
	session *models.Session
}

// NewGate creates a gate in the Checking state. Probe must be called once
// before decisions are requested.
func NewGate(service services.Service, logger *log.Logger) *Gate {
	return &Gate{service: service, logger: logger, state: Checking}
}

// Probe issues the single "who am I" request and settles the gate. The
// failure reason is logged for diagnostics but never surfaced to the user;
// any failure simply settles Unauthorized. Calling Probe again on a settled
// gate is a no-op.
func (g *Gate) Probe(ctx context.Context) State {
	if g.state != Checking {
		return g.state
	}

	session, err := g.service.Ping(ctx)
	if err != nil {
		if g.logger != nil {
			g.logger.Debug("session probe settled unauthenticated", "reason", err)
		}
		g.state = Unauthorized
		return g.state
	}

	g.session = session
	g.state = Authorized
	if g.logger != nil {
		g.logger.Debug("session probe settled", "email", session.Email, "roles", len(session.Roles))
	}
	return g.state
}

// State returns the gate's current state.
func (g *Gate) State() State { return g.state }

// Session returns the settled session, nil while checking or unauthorized.
func (g *Gate) Session() *models.Session { return g.session }

// RequireAuth decides for a route that needs any authenticated user.
func (g *Gate) RequireAuth() Decision {
	if g.state == Authorized {
		return Render
	}
	return RedirectLogin
}

// RequireRole decides for a route that needs an elevated role. The role
// comparison is a case-sensitive exact match against the session's role list.
// No session at all redirects to login, not to the unauthorized view.
func (g *Gate) RequireRole(role string) Decision {
	if g.state != Authorized || g.session == nil {
		return RedirectLogin
	}
	if g.session.HasRole(role) {
		return Render
	}
	return RedirectUnauthorized
}
