package catalog

import (
	"testing"

	"github.com/cineniche/cinectl/internal/models"
)

func TestAdminPage(t *testing.T) {
	t.Run("TotalPages Rounds Up", func(t *testing.T) {
		pager := NewAdminPage(5)
		pager.SetTotal(12)
		if pager.TotalPages() != 3 {
			t.Errorf("expected 3 pages, got %d", pager.TotalPages())
		}

		pager.SetTotal(10)
		if pager.TotalPages() != 2 {
			t.Errorf("expected 2 pages, got %d", pager.TotalPages())
		}

		pager.SetTotal(0)
		if pager.TotalPages() != 1 {
			t.Errorf("expected empty table to report 1 page, got %d", pager.TotalPages())
		}
	})

	t.Run("Final Partial Page", func(t *testing.T) {
		pager := NewAdminPage(5)
		pager.SetTotal(12)
		pager.SetPage(3)

		start, end := pager.Bounds()
		if start != 10 || end != 12 {
			t.Errorf("expected bounds [10,12), got [%d,%d)", start, end)
		}
	})

	t.Run("Pages Partition Without Overlap Or Gap", func(t *testing.T) {
		items := make([]int, 12)
		for i := range items {
			items[i] = i
		}

		pager := NewAdminPage(5)
		pager.SetTotal(len(items))

		seen := make(map[int]bool)
		for page := 1; page <= pager.TotalPages(); page++ {
			pager.SetPage(page)
			for _, item := range Slice(pager, items) {
				if seen[item] {
					t.Errorf("item %d appeared on more than one page", item)
				}
				seen[item] = true
			}
		}
		if len(seen) != len(items) {
			t.Errorf("expected every item covered, saw %d of %d", len(seen), len(items))
		}
	})

	t.Run("SetPage Clamps Into Range", func(t *testing.T) {
		pager := NewAdminPage(5)
		pager.SetTotal(12)

		pager.SetPage(99)
		if pager.Page() != 3 {
			t.Errorf("expected clamp to 3, got %d", pager.Page())
		}
		pager.SetPage(-1)
		if pager.Page() != 1 {
			t.Errorf("expected clamp to 1, got %d", pager.Page())
		}
	})

	t.Run("Shrinking Total Clamps Current Page", func(t *testing.T) {
		pager := NewAdminPage(5)
		pager.SetTotal(12)
		pager.SetPage(3)

		pager.SetTotal(6)
		if pager.Page() != 2 {
			t.Errorf("expected clamp to new last page 2, got %d", pager.Page())
		}
	})

	t.Run("SetPageSize Resets To Page One", func(t *testing.T) {
		pager := NewAdminPage(5)
		pager.SetTotal(40)
		pager.SetPage(4)

		pager.SetPageSize(10)
		if pager.Page() != 1 {
			t.Errorf("expected reset to page 1, got %d", pager.Page())
		}
		if pager.TotalPages() != 4 {
			t.Errorf("expected 4 pages at size 10, got %d", pager.TotalPages())
		}
	})

	t.Run("Changed Query Resets To Page One", func(t *testing.T) {
		pager := NewAdminPage(5)
		pager.SetTotal(40)
		pager.SetPage(4)

		pager.SetQuery("matrix")
		if pager.Page() != 1 {
			t.Errorf("expected reset to page 1, got %d", pager.Page())
		}
		if pager.Query() != "matrix" {
			t.Errorf("unexpected query %q", pager.Query())
		}

		pager.SetPage(3)
		pager.SetQuery("matrix")
		if pager.Page() != 3 {
			t.Errorf("expected unchanged query to keep page 3, got %d", pager.Page())
		}
	})

	t.Run("FilterByTitle Matches Substrings Case-Insensitively", func(t *testing.T) {
		movies := []models.Movie{
			{ShowID: "s1", Title: "The Matrix"},
			{ShowID: "s2", Title: "Matrix Reloaded"},
			{ShowID: "s3", Title: "Blade Runner"},
		}

		got := FilterByTitle(movies, "matri")
		if len(got) != 2 || got[0].ShowID != "s1" || got[1].ShowID != "s2" {
			t.Errorf("unexpected matches: %v", got)
		}

		if got := FilterByTitle(movies, ""); len(got) != 3 {
			t.Errorf("expected empty query to keep all titles, got %d", len(got))
		}

		if got := FilterByTitle(movies, "alien"); len(got) != 0 {
			t.Errorf("expected no matches, got %v", got)
		}
	})

	t.Run("Prev And Next Stop At The Ends", func(t *testing.T) {
		pager := NewAdminPage(5)
		pager.SetTotal(12)

		pager.Prev()
		if pager.Page() != 1 {
			t.Errorf("expected page 1, got %d", pager.Page())
		}
		pager.SetPage(3)
		pager.Next()
		if pager.Page() != 3 {
			t.Errorf("expected page 3, got %d", pager.Page())
		}
	})

	t.Run("Links", func(t *testing.T) {
		kinds := func(links []PageLink) []LinkKind {
			ks := make([]LinkKind, len(links))
			for i, l := range links {
				ks[i] = l.Kind
			}
			return ks
		}
		pages := func(links []PageLink) []int {
			var ps []int
			for _, l := range links {
				if l.Kind == LinkPage {
					ps = append(ps, l.Page)
				}
			}
			return ps
		}
		equalInts := func(a, b []int) bool {
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		}

		t.Run("Single Page", func(t *testing.T) {
			pager := NewAdminPage(5)
			pager.SetTotal(3)

			links := pager.Links()
			if !equalInts(pages(links), []int{1}) {
				t.Errorf("expected pages [1], got %v", pages(links))
			}
			if !links[0].Disabled || !links[len(links)-1].Disabled {
				t.Error("expected prev and next disabled on the only page")
			}
		})

		t.Run("Middle Of A Long Run Shows Ends And Ellipses", func(t *testing.T) {
			pager := NewAdminPage(5)
			pager.SetTotal(50)
			pager.SetPage(5)

			links := pager.Links()
			if !equalInts(pages(links), []int{1, 4, 5, 6, 10}) {
				t.Errorf("expected pages [1 4 5 6 10], got %v", pages(links))
			}

			ellipses := 0
			for _, k := range kinds(links) {
				if k == LinkEllipsis {
					ellipses++
				}
			}
			if ellipses != 2 {
				t.Errorf("expected 2 ellipses, got %d", ellipses)
			}
		})

		t.Run("Near The Start Skips First-Page Duplicate", func(t *testing.T) {
			pager := NewAdminPage(5)
			pager.SetTotal(50)
			pager.SetPage(2)

			links := pager.Links()
			if !equalInts(pages(links), []int{1, 2, 3, 10}) {
				t.Errorf("expected pages [1 2 3 10], got %v", pages(links))
			}
			for _, l := range links {
				if l.Kind == LinkEllipsis {
					t.Error("expected no leading ellipsis at page 2")
				}
				break
			}
		})

		t.Run("Near The End Mirrors The Start", func(t *testing.T) {
			pager := NewAdminPage(5)
			pager.SetTotal(50)
			pager.SetPage(9)

			links := pager.Links()
			if !equalInts(pages(links), []int{1, 8, 9, 10}) {
				t.Errorf("expected pages [1 8 9 10], got %v", pages(links))
			}
		})

		t.Run("Current Page Is Marked", func(t *testing.T) {
			pager := NewAdminPage(5)
			pager.SetTotal(50)
			pager.SetPage(5)

			current := 0
			for _, l := range pager.Links() {
				if l.Current {
					current++
					if l.Page != 5 {
						t.Errorf("expected current page 5, got %d", l.Page)
					}
				}
			}
			if current != 1 {
				t.Errorf("expected exactly one current link, got %d", current)
			}
		})
	})
}
