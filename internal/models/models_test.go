package models

import "testing"

func TestMovieHelpers(t *testing.T) {
	t.Run("Genres", func(t *testing.T) {
		m := Movie{Genre: "Action, Drama ,Thriller"}
		got := m.Genres()
		want := []string{"Action", "Drama", "Thriller"}
		if len(got) != len(want) {
			t.Fatalf("expected %d genres, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("genre %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})

	t.Run("Genres With Empty Field", func(t *testing.T) {
		m := Movie{}
		if got := m.Genres(); got != nil {
			t.Errorf("expected nil genres, got %v", got)
		}
	})

	t.Run("CastMembers Drops Empty Entries", func(t *testing.T) {
		m := Movie{Cast: "Alice Adams,, Bob Brown ,"}
		got := m.CastMembers()
		if len(got) != 2 {
			t.Fatalf("expected 2 cast members, got %d: %v", len(got), got)
		}
		if got[0] != "Alice Adams" || got[1] != "Bob Brown" {
			t.Errorf("unexpected cast members: %v", got)
		}
	})

	t.Run("MatchesGenre", func(t *testing.T) {
		m := Movie{Genre: "Action,Drama"}

		if !m.MatchesGenre("drama") {
			t.Error("expected case-insensitive genre match")
		}
		if !m.MatchesGenre("") {
			t.Error("expected empty genre to match")
		}
		if m.MatchesGenre("Comedy") {
			t.Error("did not expect Comedy to match")
		}
		if !m.MatchesGenre("action,drama") {
			t.Error("expected match across the whole comma-separated field")
		}
	})

	t.Run("MatchesQuery", func(t *testing.T) {
		m := Movie{Title: "The Long Goodbye", Director: "Robert Altman", Cast: "Elliott Gould, Nina van Pallandt"}

		cases := []struct {
			name  string
			query string
			want  bool
		}{
			{"title substring", "goodbye", true},
			{"director substring", "altman", true},
			{"cast substring", "gould", true},
			{"empty query", "", true},
			{"no match", "kubrick", false},
		}
		for _, tt := range cases {
			t.Run(tt.name, func(t *testing.T) {
				if got := m.MatchesQuery(tt.query); got != tt.want {
					t.Errorf("MatchesQuery(%q) = %v, want %v", tt.query, got, tt.want)
				}
			})
		}
	})

	t.Run("MatchesQuery With Absent Fields", func(t *testing.T) {
		m := Movie{Title: "Untitled"}
		if m.MatchesQuery("someone") {
			t.Error("expected no match against absent director/cast")
		}
	})
}

func TestFilter(t *testing.T) {
	movies := []Movie{
		{ShowID: "s1", Genre: "Action,Drama", Title: "Foo"},
		{ShowID: "s2", Genre: "Comedy", Title: "Bar"},
	}

	t.Run("Genre Filter", func(t *testing.T) {
		f := Filter{Genre: "Drama"}
		if !f.Matches(movies[0]) || f.Matches(movies[1]) {
			t.Error("expected only s1 to match genre Drama")
		}
	})

	t.Run("Search Filter", func(t *testing.T) {
		f := Filter{SearchQuery: "bar"}
		if f.Matches(movies[0]) || !f.Matches(movies[1]) {
			t.Error("expected only s2 to match query 'bar'")
		}
	})

	t.Run("Empty Filter Matches All", func(t *testing.T) {
		f := Filter{}
		if !f.IsZero() {
			t.Error("expected zero filter")
		}
		for _, m := range movies {
			if !f.Matches(m) {
				t.Errorf("expected %s to match empty filter", m.ShowID)
			}
		}
	})

	t.Run("AND Of Both Fields", func(t *testing.T) {
		f := Filter{Genre: "Action", SearchQuery: "bar"}
		if f.Matches(movies[0]) {
			t.Error("genre matches but query does not; expected no match")
		}
	})
}

func TestSessionHasRole(t *testing.T) {
	s := Session{Email: "admin@cineniche.com", Roles: []string{"Administrator", "Viewer"}}

	if !s.HasRole("Administrator") {
		t.Error("expected exact role match")
	}
	if s.HasRole("administrator") {
		t.Error("role match must be case-sensitive")
	}
	if s.HasRole("Admin") {
		t.Error("role match must not be a substring match")
	}
	if (Session{}).HasRole("Viewer") {
		t.Error("empty session has no roles")
	}
}
