// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/cineniche/cinectl/internal/models"
)

// MockService is a configurable test double for [services.Service].
//
// Zero value behaves as an authenticated viewer over an empty catalog; set
// the fields to shape responses per test.
type MockService struct {
	Session      *models.Session
	PingErr      error
	Catalog      []models.Movie
	MoviesErr    error
	MovieRecs    map[string][]string
	UserRecs     map[int][]string
	RecsErr      error
	RatingOK     bool
	RatingErr    error
	CreateErr    error
	UpdateErr    error
	DeleteErr    error
	CreateCalls  int
	UpdateCalls  int
	DeleteCalls  int
	DeletedIDs   []string
	LoginErr     error
	RegisterErr  error
	Average      *models.AverageRating
}

func (m *MockService) Ping(ctx context.Context) (*models.Session, error) {
	if m.PingErr != nil {
		return nil, m.PingErr
	}
	if m.Session != nil {
		return m.Session, nil
	}
	return &models.Session{Email: "viewer@cineniche.com", Roles: []string{"Viewer"}}, nil
}

func (m *MockService) Login(ctx context.Context, email, password string, persistent bool) error {
	return m.LoginErr
}

func (m *MockService) Register(ctx context.Context, email, password string) error {
	return m.RegisterErr
}

func (m *MockService) Logout(ctx context.Context) error { return nil }

func (m *MockService) Movies(ctx context.Context) ([]models.Movie, error) {
	if m.MoviesErr != nil {
		return nil, m.MoviesErr
	}
	return m.Catalog, nil
}

func (m *MockService) Movie(ctx context.Context, showID string) (*models.Movie, error) {
	for _, movie := range m.Catalog {
		if movie.ShowID == showID {
			return &movie, nil
		}
	}
	return nil, errors.New("movie not found: " + showID)
}

func (m *MockService) CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return &movie, nil
}

func (m *MockService) UpdateMovie(ctx context.Context, showID string, movie models.Movie) (*models.Movie, error) {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	return &movie, nil
}

func (m *MockService) DeleteMovie(ctx context.Context, showID string) error {
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedIDs = append(m.DeletedIDs, showID)
	return nil
}

func (m *MockService) MovieRecommendations(ctx context.Context, showID string) ([]string, error) {
	if m.RecsErr != nil {
		return nil, m.RecsErr
	}
	return m.MovieRecs[showID], nil
}

func (m *MockService) UserRecommendations(ctx context.Context, userID int) ([]string, error) {
	if m.RecsErr != nil {
		return nil, m.RecsErr
	}
	return m.UserRecs[userID], nil
}

func (m *MockService) SubmitRating(ctx context.Context, rating models.RatingSubmission) (bool, error) {
	if m.RatingErr != nil {
		return false, m.RatingErr
	}
	return m.RatingOK, nil
}

func (m *MockService) AverageRating(ctx context.Context, showID string) (*models.AverageRating, error) {
	return m.Average, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
