package catalog

import (
	"strings"

	"github.com/cineniche/cinectl/internal/models"
)

// AdminPage implements the offset pagination used by the admin table: a
// 1-based current page over a total item count, plus the link row rendered
// beneath the table. The table is paginated after the title search is
// applied, so the query lives here alongside the page.
type AdminPage struct {
	page     int
	pageSize int
	total    int
	query    string
}

// LinkKind discriminates entries in the rendered pagination row.
type LinkKind int

const (
	// LinkPrev is the previous-page control.
	LinkPrev LinkKind = iota
	// LinkPage is a numbered page control.
	LinkPage
	// LinkEllipsis is a non-interactive gap marker.
	LinkEllipsis
	// LinkNext is the next-page control.
	LinkNext
)

// PageLink is one control in the pagination row.
type PageLink struct {
	Kind     LinkKind
	Page     int
	Current  bool
	Disabled bool
}

// NewAdminPage creates a pager on page 1. A non-positive page size falls
// back to 1.
func NewAdminPage(pageSize int) *AdminPage {
	if pageSize < 1 {
		pageSize = 1
	}
	return &AdminPage{page: 1, pageSize: pageSize}
}

// Page returns the current 1-based page.
func (p *AdminPage) Page() int { return p.page }

// PageSize returns the rows-per-page setting.
func (p *AdminPage) PageSize() int { return p.pageSize }

// TotalPages returns the page count for the current total, never below 1 so
// an empty table still renders page 1 of 1.
func (p *AdminPage) TotalPages() int {
	if p.total <= 0 {
		return 1
	}
	pages := p.total / p.pageSize
	if p.total%p.pageSize != 0 {
		pages++
	}
	return pages
}

// SetTotal records the item count the pager partitions and clamps the
// current page back into range, so deleting the last row of the last page
// lands on the new final page instead of an empty one.
func (p *AdminPage) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if p.page > p.TotalPages() {
		p.page = p.TotalPages()
	}
}

// SetPageSize changes the rows-per-page setting and returns to page 1.
func (p *AdminPage) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	p.pageSize = size
	p.page = 1
}

// ResetPage returns to page 1, used when the search term changes.
func (p *AdminPage) ResetPage() { p.page = 1 }

// Query returns the current title search term.
func (p *AdminPage) Query() string { return p.query }

// SetQuery records the title search term. A changed term returns to page 1;
// setting the same term again leaves the page alone.
func (p *AdminPage) SetQuery(query string) {
	if query == p.query {
		return
	}
	p.query = query
	p.ResetPage()
}

// FilterByTitle returns the movies whose title contains the query,
// case-insensitively, keeping order. An empty query returns the list as is.
func FilterByTitle(movies []models.Movie, query string) []models.Movie {
	if query == "" {
		return movies
	}
	needle := strings.ToLower(query)
	matches := make([]models.Movie, 0)
	for _, movie := range movies {
		if strings.Contains(strings.ToLower(movie.Title), needle) {
			matches = append(matches, movie)
		}
	}
	return matches
}

// SetPage moves to the given page, clamped into [1, TotalPages].
func (p *AdminPage) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := p.TotalPages(); page > max {
		page = max
	}
	p.page = page
}

// Next advances one page if one exists.
func (p *AdminPage) Next() { p.SetPage(p.page + 1) }

// Prev steps back one page if one exists.
func (p *AdminPage) Prev() { p.SetPage(p.page - 1) }

// Bounds returns the half-open [start, end) index range of the current page
// within the item list.
func (p *AdminPage) Bounds() (start, end int) {
	start = (p.page - 1) * p.pageSize
	if start > p.total {
		start = p.total
	}
	end = start + p.pageSize
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Slice returns the current page's rows from the full item list. The list
// is expected to match the recorded total; shorter lists are clamped.
func Slice[T any](p *AdminPage, items []T) []T {
	start, end := p.Bounds()
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Links renders the pagination row. Prev and Next always appear, disabled at
// the ends. Numbered links cover the window around the current page plus the
// first and last page when they fall outside it, with ellipses marking any
// gap wider than one.
func (p *AdminPage) Links() []PageLink {
	totalPages := p.TotalPages()
	page := p.page

	links := []PageLink{{Kind: LinkPrev, Disabled: page == 1}}

	if page > 2 {
		links = append(links, PageLink{Kind: LinkPage, Page: 1})
	}
	if page > 3 {
		links = append(links, PageLink{Kind: LinkEllipsis})
	}

	for n := page - 1; n <= page+1; n++ {
		if n < 1 || n > totalPages {
			continue
		}
		links = append(links, PageLink{Kind: LinkPage, Page: n, Current: n == page})
	}

	if page < totalPages-2 {
		links = append(links, PageLink{Kind: LinkEllipsis})
	}
	if page < totalPages-1 {
		links = append(links, PageLink{Kind: LinkPage, Page: totalPages})
	}

	links = append(links, PageLink{Kind: LinkNext, Disabled: page == totalPages})
	return links
}
