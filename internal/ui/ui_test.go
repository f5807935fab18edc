package ui

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cineniche/cinectl/internal/auth"
	"github.com/cineniche/cinectl/internal/catalog"
	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/recs"
	mocks "github.com/cineniche/cinectl/internal/testing"
)

func newAdminModel(t *testing.T, movies []models.Movie, pageSize int) *Model {
	t.Helper()
	ctx := context.Background()

	svc := &mocks.MockService{Catalog: movies}
	status := &statusLine{}
	store := catalog.NewStore(svc, status, nil)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	model := NewModel(ctx, svc, store, recs.NewResolver(svc, store, status, nil), auth.NewGate(svc, nil), status, Options{AdminPageSize: pageSize})
	model.view = AdminView
	model.adminPage.SetTotal(len(model.adminRows()))
	return model
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAdminSearch(t *testing.T) {
	movies := []models.Movie{
		{ShowID: "s1", Title: "The Matrix"},
		{ShowID: "s2", Title: "Blade Runner"},
		{ShowID: "s3", Title: "Matrix Reloaded"},
		{ShowID: "s4", Title: "Alien"},
		{ShowID: "s5", Title: "Solaris"},
	}

	t.Run("Typed Query Narrows The Table And Returns To Page One", func(t *testing.T) {
		model := newAdminModel(t, movies, 2)

		model.Update(tea.KeyMsg{Type: tea.KeyRight})
		if model.adminPage.Page() != 2 {
			t.Fatalf("expected page 2 before searching, got %d", model.adminPage.Page())
		}

		model.Update(keyRunes("/"))
		model.Update(keyRunes("matrix"))

		if model.adminPage.Page() != 1 {
			t.Errorf("expected changed query to return to page 1, got %d", model.adminPage.Page())
		}
		rows := model.adminRows()
		if len(rows) != 2 || rows[0].ShowID != "s1" || rows[1].ShowID != "s3" {
			t.Errorf("expected the two matrix titles in order, got %v", rows)
		}

		view := model.renderAdmin()
		if !strings.Contains(view, "Search: matrix") {
			t.Errorf("expected search prompt in view, got %q", view)
		}
		if strings.Contains(view, "Blade Runner") {
			t.Errorf("expected non-matching titles hidden, got %q", view)
		}
	})

	t.Run("Enter Leaves Search Mode Keeping The Query", func(t *testing.T) {
		model := newAdminModel(t, movies, 2)

		model.Update(keyRunes("/"))
		model.Update(keyRunes("alien"))
		model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		if model.adminSearching {
			t.Error("expected search mode to end")
		}
		if model.adminPage.Query() != "alien" {
			t.Errorf("expected query kept, got %q", model.adminPage.Query())
		}

		model.Update(keyRunes("d"))
		if model.pendingDelete != "s4" {
			t.Errorf("expected delete armed for the filtered row, got %q", model.pendingDelete)
		}
	})

	t.Run("Backspace Widens The Table Again", func(t *testing.T) {
		model := newAdminModel(t, movies, 2)

		model.Update(keyRunes("/"))
		model.Update(keyRunes("sx"))
		if len(model.adminRows()) != 0 {
			t.Fatalf("expected no matches for sx, got %d", len(model.adminRows()))
		}

		model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		if got := model.adminRows(); len(got) != 1 || got[0].ShowID != "s5" {
			t.Errorf("expected Solaris after trimming to s, got %v", got)
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Run("Short Strings Pass Through", func(t *testing.T) {
		if got := truncate("Alien", 40); got != "Alien" {
			t.Errorf("unexpected result %q", got)
		}
	})

	t.Run("Long Strings End In An Ellipsis", func(t *testing.T) {
		got := truncate("The Long Goodbye", 8)
		if got != "The Lon…" {
			t.Errorf("unexpected result %q", got)
		}
	})

	t.Run("Multi-Byte Titles Stay Valid UTF-8", func(t *testing.T) {
		got := truncate("Amélie à Montmartre", 8)
		if !utf8.ValidString(got) {
			t.Fatalf("invalid UTF-8 in %q", got)
		}
		if utf8.RuneCountInString(got) != 8 {
			t.Errorf("expected 8 runes, got %d in %q", utf8.RuneCountInString(got), got)
		}
		if got != "Amélie …" {
			t.Errorf("unexpected result %q", got)
		}
	})
}
