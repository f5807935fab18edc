// CineNiche backend implementation of [Service]
//
// Endpoint paths mirror the ASP.NET backend's controller routes.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/shared"
)

const (
	moviesPath    = "/api/Movies"
	movieRecsPath = "/api/MovieRecommendations"
	userRecsPath  = "/api/UserRecommendations"
	loginPath     = "/auth/login"
	registerPath  = "/auth/register"
	logoutPath    = "/logout"
)

// StatusError is returned for non-2xx responses so callers can branch on the
// status code (404 from the recommendation endpoints means "no row", not a
// failure).
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// CineNicheService implements [Service] against the CineNiche HTTP API.
//
// A cookie jar carries the session across calls; ImportSession can seed a
// cookie captured from a browser instead. All authorization is enforced by
// the backend; this client only reacts to its 401s.
type CineNicheService struct {
	baseURL       string
	authPingPath  string
	httpClient    *http.Client
	guard         *RedirectGuard
	sessionCookie string
}

var _ Service = (*CineNicheService)(nil)

// NewCineNicheService creates a client for the backend at baseURL.
// A nil client gets a fresh http.Client with a cookie jar so the session
// cookie set by login is sent on subsequent requests.
func NewCineNicheService(baseURL, authPingPath string, client *http.Client, guard *RedirectGuard) *CineNicheService {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if authPingPath == "" {
		authPingPath = "/pingauth"
	}
	if client == nil {
		jar, _ := cookiejar.New(nil)
		client = &http.Client{Jar: jar}
	}
	if guard == nil {
		guard = NewRedirectGuard(nil)
	}

	return &CineNicheService{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		authPingPath: authPingPath,
		httpClient:   client,
		guard:        guard,
	}
}

func (s *CineNicheService) Name() string { return "CineNiche" }

// Guard exposes the redirect guard so callers can inspect its state. The
// guard resets itself on a successful login; its callback is wired at
// construction.
func (s *CineNicheService) Guard() *RedirectGuard { return s.guard }

// ImportSession sets a raw Cookie header used on every request, for sessions
// captured from a browser via `cinectl setup session`.
func (s *CineNicheService) ImportSession(cookie string) {
	s.sessionCookie = cookie
}

type requestOpts struct {
	// skipAuthRedirect exempts the call from the 401 redirect guard.
	// Used by the session probe to avoid redirect loops.
	skipAuthRedirect bool
}

// doRequest performs one HTTP round trip and classifies the outcome.
//
// result, when non-nil, receives the decoded JSON body of a 2xx response.
func (s *CineNicheService) doRequest(ctx context.Context, method, path string, body, result any, opts requestOpts) error {
	if !opts.skipAuthRedirect && s.guard.State() == Redirecting {
		return fmt.Errorf("%w: %s %s suppressed", shared.ErrRedirecting, method, path)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.sessionCookie != "" {
		req.Header.Set("Cookie", s.sessionCookie)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if !opts.skipAuthRedirect {
			s.guard.Begin()
		}
		return fmt.Errorf("%w: %s %s", shared.ErrNotAuthenticated, method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: respBody}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
		}
	}

	return nil
}

// Ping issues the single session probe. The redirect guard is bypassed so an
// unauthenticated probe cannot trigger the login redirect it exists to feed.
func (s *CineNicheService) Ping(ctx context.Context) (*models.Session, error) {
	var session models.Session
	err := s.doRequest(ctx, http.MethodGet, s.authPingPath, nil, &session, requestOpts{skipAuthRedirect: true})
	if err != nil {
		return nil, err
	}
	if session.Email == "" || session.Roles == nil {
		return nil, fmt.Errorf("%w: probe response missing email or roles", shared.ErrNotAuthenticated)
	}
	return &session, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginError struct {
	Message string `json:"message"`
}

// Login authenticates and lets the backend set the session cookie.
func (s *CineNicheService) Login(ctx context.Context, email, password string, persistent bool) error {
	mode := "useSessionCookies"
	if persistent {
		mode = "useCookies"
	}
	path := fmt.Sprintf("%s?%s=true", loginPath, mode)

	err := s.doRequest(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, nil, requestOpts{skipAuthRedirect: true})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			var body loginError
			if json.Unmarshal(statusErr.Body, &body) == nil && body.Message != "" {
				return fmt.Errorf("%w: %s", shared.ErrAuthFailed, body.Message)
			}
			return fmt.Errorf("%w: status %d", shared.ErrAuthFailed, statusErr.StatusCode)
		}
		return err
	}

	// A fresh session invalidates any pending redirect.
	s.guard.Reset()
	return nil
}

// Register creates a new account.
func (s *CineNicheService) Register(ctx context.Context, email, password string) error {
	err := s.doRequest(ctx, http.MethodPost, registerPath, credentials{Email: email, Password: password}, nil, requestOpts{skipAuthRedirect: true})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return fmt.Errorf("%w: registration rejected with status %d", shared.ErrAuthFailed, statusErr.StatusCode)
		}
		return err
	}
	return nil
}

// Logout ends the current session; errors are reported but the local cookie
// state is considered gone either way.
func (s *CineNicheService) Logout(ctx context.Context) error {
	s.sessionCookie = ""
	return s.doRequest(ctx, http.MethodPost, logoutPath, nil, nil, requestOpts{skipAuthRedirect: true})
}

// Movies fetches the full catalog.
func (s *CineNicheService) Movies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := s.doRequest(ctx, http.MethodGet, moviesPath, nil, &movies, requestOpts{}); err != nil {
		return nil, err
	}
	return movies, nil
}

// Movie fetches a single movie by show id.
func (s *CineNicheService) Movie(ctx context.Context, showID string) (*models.Movie, error) {
	var movie models.Movie
	path := fmt.Sprintf("%s/%s", moviesPath, url.PathEscape(showID))
	if err := s.doRequest(ctx, http.MethodGet, path, nil, &movie, requestOpts{}); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, showID)
		}
		return nil, err
	}
	return &movie, nil
}

// CreateMovie adds a movie to the catalog.
func (s *CineNicheService) CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	var created models.Movie
	if err := s.doRequest(ctx, http.MethodPost, moviesPath, movie, &created, requestOpts{}); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMovie replaces the movie with the given show id. A 204 with no body
// is success; the submitted movie is returned in that case.
func (s *CineNicheService) UpdateMovie(ctx context.Context, showID string, movie models.Movie) (*models.Movie, error) {
	updated := movie
	path := fmt.Sprintf("%s/%s", moviesPath, url.PathEscape(showID))
	if err := s.doRequest(ctx, http.MethodPut, path, movie, &updated, requestOpts{}); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMovie removes a movie from the catalog.
func (s *CineNicheService) DeleteMovie(ctx context.Context, showID string) error {
	path := fmt.Sprintf("%s/%s", moviesPath, url.PathEscape(showID))
	return s.doRequest(ctx, http.MethodDelete, path, nil, nil, requestOpts{})
}

// recommendations fetches an ordered id list, mapping 404 to empty.
func (s *CineNicheService) recommendations(ctx context.Context, path string) ([]string, error) {
	var ids []string
	if err := s.doRequest(ctx, http.MethodGet, path, nil, &ids, requestOpts{}); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return []string{}, nil
		}
		return nil, err
	}
	return ids, nil
}

// MovieRecommendations returns the ordered show ids recommended for a movie.
func (s *CineNicheService) MovieRecommendations(ctx context.Context, showID string) ([]string, error) {
	return s.recommendations(ctx, fmt.Sprintf("%s/%s", movieRecsPath, url.PathEscape(showID)))
}

// UserRecommendations returns the ordered show ids recommended for a user.
func (s *CineNicheService) UserRecommendations(ctx context.Context, userID int) ([]string, error) {
	return s.recommendations(ctx, fmt.Sprintf("%s/%d", userRecsPath, userID))
}

// SubmitRating posts a user rating. The backend signals success with a 2xx;
// the body is ignored.
func (s *CineNicheService) SubmitRating(ctx context.Context, rating models.RatingSubmission) (bool, error) {
	err := s.doRequest(ctx, http.MethodPost, moviesPath+"/rating", rating, nil, requestOpts{})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AverageRating returns the aggregate rating for a show, nil when none exists.
func (s *CineNicheService) AverageRating(ctx context.Context, showID string) (*models.AverageRating, error) {
	var avg models.AverageRating
	path := fmt.Sprintf("%s/rating/average/%s", moviesPath, url.PathEscape(showID))
	if err := s.doRequest(ctx, http.MethodGet, path, nil, &avg, requestOpts{}); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, nil
		}
		return nil, err
	}
	return &avg, nil
}
