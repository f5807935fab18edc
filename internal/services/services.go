// package services defines interface Service for the CineNiche HTTP API
package services

import (
	"context"

	"github.com/cineniche/cinectl/internal/models"
)

// Service defines the operations the CineNiche backend exposes to this client.
type Service interface {
	// Ping issues the single credential-bearing "who am I" probe.
	// Returns the session when the response is valid JSON carrying an email
	// and a roles list; otherwise an error explaining why the probe settled
	// unauthenticated. Never retried.
	Ping(ctx context.Context) (*models.Session, error)

	// Login authenticates with email/password. persistent selects the
	// useCookies variant over useSessionCookies.
	Login(ctx context.Context, email, password string, persistent bool) error

	// Register creates a new account.
	Register(ctx context.Context, email, password string) error

	// Logout ends the current session.
	Logout(ctx context.Context) error

	// Movies fetches the full movie catalog.
	Movies(ctx context.Context) ([]models.Movie, error)

	// Movie fetches a single movie by its show id.
	Movie(ctx context.Context, showID string) (*models.Movie, error)

	// CreateMovie adds a movie to the catalog.
	CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error)

	// UpdateMovie replaces the movie with the given show id.
	UpdateMovie(ctx context.Context, showID string, movie models.Movie) (*models.Movie, error)

	// DeleteMovie removes a movie from the catalog.
	DeleteMovie(ctx context.Context, showID string) error

	// MovieRecommendations returns the ordered opaque show ids recommended
	// for a movie. A missing row (404) is an empty list, not an error.
	MovieRecommendations(ctx context.Context, showID string) ([]string, error)

	// UserRecommendations returns the ordered opaque show ids recommended
	// for a user. A missing row (404) is an empty list, not an error.
	UserRecommendations(ctx context.Context, userID int) ([]string, error)

	// SubmitRating posts a user rating; the boolean mirrors the backend's
	// success flag.
	SubmitRating(ctx context.Context, rating models.RatingSubmission) (bool, error)

	// AverageRating returns the aggregate rating for a show, or nil when the
	// backend has none.
	AverageRating(ctx context.Context, showID string) (*models.AverageRating, error)

	// Name returns the name of the backing service.
	Name() string
}
