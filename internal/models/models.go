// package models defines the data model for the CineNiche terminal client
package models

import "strings"

// Movie represents a single catalog entry as served by the backend.
//
// Fields mirror the wire format exactly. Director, Cast, Country and Genre
// may be empty; consumers must treat them as optional.
type Movie struct {
	ShowID      string `json:"showId"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Country     string `json:"country"`
	ReleaseYear int    `json:"releaseYear"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
}

// splitList splits a comma separated free-text field into trimmed entries,
// dropping empties.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Genres returns the movie's genre tags split from the comma separated field.
func (m Movie) Genres() []string {
	return splitList(m.Genre)
}

// CastMembers returns the movie's cast names split from the comma separated field.
func (m Movie) CastMembers() []string {
	return splitList(m.Cast)
}

// MatchesGenre reports whether the whole comma-separated genre field
// contains the given genre, case-insensitively. An empty genre matches
// everything.
func (m Movie) MatchesGenre(genre string) bool {
	if genre == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Genre), strings.ToLower(genre))
}

// MatchesQuery reports whether the query is a case-insensitive substring of
// the movie's title, director, or any cast member. An empty query matches
// everything.
func (m Movie) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	if strings.Contains(strings.ToLower(m.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Director), needle) {
		return true
	}
	for _, actor := range m.CastMembers() {
		if strings.Contains(strings.ToLower(actor), needle) {
			return true
		}
	}
	return false
}

// Filter is the active catalog filter. Both fields are optional and combine
// as a logical AND when present.
type Filter struct {
	Genre       string
	SearchQuery string
}

// IsZero reports whether no filter is active.
func (f Filter) IsZero() bool {
	return f.Genre == "" && f.SearchQuery == ""
}

// Matches applies the filter to a single movie.
func (f Filter) Matches(m Movie) bool {
	return m.MatchesGenre(f.Genre) && m.MatchesQuery(f.SearchQuery)
}

// Session is the authenticated identity resolved from the session probe.
type Session struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// HasRole reports whether the session carries the role. The comparison is a
// case-sensitive exact match against the role list, never a substring.
func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RatingSubmission is the payload for posting a user rating.
type RatingSubmission struct {
	UserID int    `json:"userId"`
	ShowID string `json:"showId"`
	Rating int    `json:"rating"`
}

// AverageRating is the aggregate rating for a single show.
type AverageRating struct {
	ShowID  string  `json:"showId"`
	Average float64 `json:"average"`
}
