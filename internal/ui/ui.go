package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cineniche/cinectl/internal/auth"
	"github.com/cineniche/cinectl/internal/catalog"
	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/recs"
	"github.com/cineniche/cinectl/internal/services"
)

// AdminRole is the role required to open the admin table.
const AdminRole = "Administrator"

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GateView ViewState = iota
	BrowseView
	DetailView
	AdminView
	UnauthorizedView
)

type gateSettledMsg struct {
	state auth.State
}

type catalogLoadedMsg struct {
	err error
}

type catalogReloadedMsg struct {
	err error
}

type detailFetchedMsg struct {
	recommended []models.Movie
	average     *models.AverageRating
}

type ratingSubmittedMsg struct {
	accepted bool
	err      error
}

// statusLine collects store notifications for the footer. Mutations run in
// tea commands off the update loop, so access is guarded.
type statusLine struct {
	mu      sync.Mutex
	message string
	isError bool
}

func (s *statusLine) Success(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	s.isError = false
}

func (s *statusLine) Error(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	s.isError = true
}

func (s *statusLine) render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.message == "" {
		return ""
	}
	if s.isError {
		return styles.error.Render(s.message)
	}
	return styles.success.Render(s.message)
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	service  services.Service
	store    *catalog.Store
	resolver *recs.Resolver
	gate     *auth.Gate
	status   *statusLine
	userID   int

	width  int
	height int

	movieList   list.Model
	listReady   bool
	pager       *catalog.ScrollPager
	browseSize  int
	sectionSize int
	genres      []string
	genreIndex  int // -1 means all genres
	filteredVer uint64

	selected    *models.Movie
	recommended []models.Movie
	average     *models.AverageRating

	adminPage      *catalog.AdminPage
	adminCursor    int
	adminSearching bool               // typing into the admin title search
	pendingDelete  string             // show id armed for deletion, empty when none

	err  error
	help help.Model
	keys keyMap
}

// Options carries the tunables the config layer feeds into the TUI.
type Options struct {
	UserID          int
	BrowsePageSize  int
	SectionPageSize int
	AdminPageSize   int
}

// NewModel creates a new TUI model with the provided dependencies. The store
// is expected to be freshly constructed with the model's notifier; use
// [NewApp] unless wiring the pieces manually.
func NewModel(ctx context.Context, service services.Service, store *catalog.Store, resolver *recs.Resolver, gate *auth.Gate, status *statusLine, opts Options) *Model {
	if opts.BrowsePageSize < 1 {
		opts.BrowsePageSize = 12
	}
	if opts.SectionPageSize < 1 {
		opts.SectionPageSize = 8
	}
	if opts.AdminPageSize < 1 {
		opts.AdminPageSize = 5
	}
	return &Model{
		ctx:         ctx,
		view:        GateView,
		service:     service,
		store:       store,
		resolver:    resolver,
		gate:        gate,
		status:      status,
		userID:      opts.UserID,
		pager:       catalog.NewScrollPager(opts.BrowsePageSize, opts.BrowsePageSize),
		browseSize:  opts.BrowsePageSize,
		sectionSize: opts.SectionPageSize,
		genreIndex:  -1,
		adminPage:   catalog.NewAdminPage(opts.AdminPageSize),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// NewApp wires a full TUI over the given service: store, resolver, gate, and
// status line.
func NewApp(ctx context.Context, service services.Service, opts Options) *Model {
	status := &statusLine{}
	store := catalog.NewStore(service, status, nil)
	resolver := recs.NewResolver(service, store, status, nil)
	gate := auth.NewGate(service, nil)
	return NewModel(ctx, service, store, resolver, gate, status, opts)
}

// Init probes the session before anything else renders.
func (m *Model) Init() tea.Cmd {
	return m.probeGate()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case AdminView:
			return m.handleAdminKeys(msg)
		case UnauthorizedView:
			return m.handleUnauthorizedKeys(msg)
		default:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}
		return m, nil

	case gateSettledMsg:
		if msg.state != auth.Authorized {
			m.err = fmt.Errorf("not signed in; run `cinectl auth login` first")
			return m, tea.Quit
		}
		m.view = BrowseView
		return m, m.loadCatalog()

	case catalogLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.genres = m.store.Genres()
		m.rebuildBrowseList()
		return m, nil

	case catalogReloadedMsg:
		if msg.err == nil {
			m.adminPage.SetTotal(len(m.adminRows()))
			m.clampAdminCursor()
			m.rebuildBrowseList()
		}
		return m, nil

	case detailFetchedMsg:
		m.recommended = msg.recommended
		m.average = msg.average
		return m, nil

	case ratingSubmittedMsg:
		if msg.err != nil {
			m.status.Error("Failed to submit rating.")
		} else if !msg.accepted {
			m.status.Error("Rating was rejected.")
		} else {
			m.status.Success("Rating saved.")
		}
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.error.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case GateView:
		return styles.help.Render("Checking session...")
	case BrowseView:
		return m.renderBrowse()
	case DetailView:
		return m.renderDetail()
	case AdminView:
		return m.renderAdmin()
	case UnauthorizedView:
		return m.renderUnauthorized()
	default:
		return ""
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is being typed, every key belongs to it.
	if m.listReady && m.movieList.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.movieList.SelectedItem().(movieItem); ok {
			m.selected = &selected.movie
			m.recommended = nil
			m.average = nil
			m.view = DetailView
			return m, m.fetchDetail(selected.movie.ShowID)
		}
		return m, nil
	case key.Matches(msg, m.keys.more):
		filtered, _ := m.store.FilteredMovies()
		if m.pager.Exhausted(len(filtered)) {
			m.status.Success("No more results.")
			return m, nil
		}
		m.pager.Advance()
		m.refreshBrowseItems()
		return m, nil
	case key.Matches(msg, m.keys.genre):
		m.cycleGenre()
		return m, nil
	case key.Matches(msg, m.keys.admin):
		switch m.gate.RequireRole(AdminRole) {
		case auth.Render:
			m.view = AdminView
			m.adminPage.SetTotal(len(m.adminRows()))
			m.adminCursor = 0
		case auth.RedirectUnauthorized:
			m.view = UnauthorizedView
		case auth.RedirectLogin:
			m.err = fmt.Errorf("not signed in; run `cinectl auth login` first")
			return m, tea.Quit
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = BrowseView
		m.selected = nil
		return m, nil
	case key.Matches(msg, m.keys.rate):
		stars, err := strconv.Atoi(msg.String())
		if err != nil || m.selected == nil {
			return m, nil
		}
		return m, m.submitRating(m.selected.ShowID, stars)
	}
	return m, nil
}

func (m *Model) handleAdminKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adminSearching {
		return m.handleAdminSearchKeys(msg)
	}

	// An armed delete only listens for confirm; anything else cancels it.
	if m.pendingDelete != "" {
		if key.Matches(msg, m.keys.confirm) {
			showID := m.pendingDelete
			m.pendingDelete = ""
			return m, m.deleteMovie(showID)
		}
		m.pendingDelete = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = BrowseView
		return m, nil
	case key.Matches(msg, m.keys.up):
		if m.adminCursor > 0 {
			m.adminCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.adminCursor++
		m.clampAdminCursor()
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.adminPage.Prev()
		m.adminCursor = 0
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.adminPage.Next()
		m.adminCursor = 0
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.adminSearching = true
		return m, nil
	case key.Matches(msg, m.keys.delete):
		rows := catalog.Slice(m.adminPage, m.adminRows())
		if m.adminCursor < len(rows) {
			m.pendingDelete = rows[m.adminCursor].ShowID
		}
		return m, nil
	}
	return m, nil
}

// handleAdminSearchKeys edits the admin title search. Every edit narrows the
// table and returns it to the first page.
func (m *Model) handleAdminSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.adminSearching = false
	case tea.KeyBackspace:
		if runes := []rune(m.adminPage.Query()); len(runes) > 0 {
			m.setAdminQuery(string(runes[:len(runes)-1]))
		}
	case tea.KeySpace:
		m.setAdminQuery(m.adminPage.Query() + " ")
	case tea.KeyRunes:
		m.setAdminQuery(m.adminPage.Query() + string(msg.Runes))
	}
	return m, nil
}

// adminRows returns the admin table's rows: the catalog narrowed by the
// title search, before pagination.
func (m *Model) adminRows() []models.Movie {
	return catalog.FilterByTitle(m.store.Movies(), m.adminPage.Query())
}

func (m *Model) setAdminQuery(query string) {
	m.adminPage.SetQuery(query)
	m.adminPage.SetTotal(len(m.adminRows()))
	m.clampAdminCursor()
}

func (m *Model) handleUnauthorizedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = BrowseView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.listReady || m.view != BrowseView {
		return m, nil
	}
	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

// cycleGenre advances the genre filter through all -> genres[0] -> ... -> all.
func (m *Model) cycleGenre() {
	if len(m.genres) == 0 {
		return
	}
	m.genreIndex++
	if m.genreIndex >= len(m.genres) {
		m.genreIndex = -1
	}

	// Genre sections reveal in smaller steps than the full catalog.
	genre := ""
	size := m.browseSize
	if m.genreIndex >= 0 {
		genre = m.genres[m.genreIndex]
		size = m.sectionSize
	}
	m.pager = catalog.NewScrollPager(size, size)

	filters := m.store.Filters()
	filters.Genre = genre
	m.store.SetFilters(filters)
	m.refreshBrowseItems()
}

// refreshBrowseItems syncs the visible list with the store's filtered view,
// resetting the reveal window whenever the membership changed.
func (m *Model) refreshBrowseItems() {
	filtered, version := m.store.FilteredMovies()
	if version != m.filteredVer {
		m.filteredVer = version
		m.pager.Reset()
	}

	visible := catalog.Visible(m.pager, filtered)
	items := make([]list.Item, len(visible))
	for i, movie := range visible {
		items[i] = movieItem{movie: movie}
	}

	if m.listReady {
		m.movieList.SetItems(items)
		m.movieList.Title = m.browseTitle(len(filtered))
	}
}

func (m *Model) rebuildBrowseList() {
	filtered, version := m.store.FilteredMovies()
	m.filteredVer = version

	visible := catalog.Visible(m.pager, filtered)
	items := make([]list.Item, len(visible))
	for i, movie := range visible {
		items[i] = movieItem{movie: movie}
	}

	m.movieList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.movieList.Title = m.browseTitle(len(filtered))
	m.movieList.SetSize(m.width-4, m.height-8)
	m.listReady = true
}

func (m *Model) browseTitle(total int) string {
	title := "CineNiche Catalog"
	if m.genreIndex >= 0 {
		title = fmt.Sprintf("%s · %s", title, m.genres[m.genreIndex])
	}
	return fmt.Sprintf("%s (%d of %d)", title, m.pager.VisibleLen(total), total)
}

func (m *Model) clampAdminCursor() {
	rows := catalog.Slice(m.adminPage, m.adminRows())
	if m.adminCursor >= len(rows) {
		m.adminCursor = len(rows) - 1
	}
	if m.adminCursor < 0 {
		m.adminCursor = 0
	}
}

func (m *Model) probeGate() tea.Cmd {
	return func() tea.Msg {
		return gateSettledMsg{state: m.gate.Probe(m.ctx)}
	}
}

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: m.store.Load(m.ctx)}
	}
}

func (m *Model) fetchDetail(showID string) tea.Cmd {
	return func() tea.Msg {
		recommended := m.resolver.ByMovie(m.ctx, showID)
		if len(recommended) == 0 {
			recommended = m.resolver.SimilarByGenre(showID)
		}
		average, _ := m.service.AverageRating(m.ctx, showID)
		return detailFetchedMsg{recommended: recommended, average: average}
	}
}

func (m *Model) submitRating(showID string, stars int) tea.Cmd {
	return func() tea.Msg {
		accepted, err := m.service.SubmitRating(m.ctx, models.RatingSubmission{
			UserID: m.userID,
			ShowID: showID,
			Rating: stars,
		})
		return ratingSubmittedMsg{accepted: accepted, err: err}
	}
}

func (m *Model) deleteMovie(showID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.DeleteMovie(m.ctx, showID); err != nil {
			return catalogReloadedMsg{err: err}
		}
		return catalogReloadedMsg{err: m.store.Reload(m.ctx)}
	}
}

func (m *Model) renderBrowse() string {
	if !m.listReady {
		return styles.help.Render("Loading catalog...")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.more, m.keys.genre, m.keys.admin, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	footer := helpView
	if status := m.status.render(); status != "" {
		footer = fmt.Sprintf("%s\n%s", status, helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(), footer)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}
	movie := m.selected

	var b strings.Builder
	b.WriteString(styles.title.Render(movie.Title))
	b.WriteString("\n")

	meta := []string{}
	if movie.ReleaseYear > 0 {
		meta = append(meta, strconv.Itoa(movie.ReleaseYear))
	}
	if movie.Rating != "" {
		meta = append(meta, movie.Rating)
	}
	if movie.Duration != "" {
		meta = append(meta, movie.Duration)
	}
	if len(meta) > 0 {
		b.WriteString(styles.help.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	if movie.Director != "" {
		b.WriteString(fmt.Sprintf("\nDirected by %s\n", movie.Director))
	}
	if movie.Description != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", movie.Description))
	}
	if cast := movie.CastMembers(); len(cast) > 0 {
		b.WriteString(fmt.Sprintf("\nCast: %s\n", strings.Join(cast, ", ")))
	}
	if m.average != nil {
		b.WriteString(fmt.Sprintf("\nAverage rating: %.1f/5\n", m.average.Average))
	}

	if len(m.recommended) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.title.Render("You might also like"))
		b.WriteString("\n")
		for _, rec := range m.recommended {
			b.WriteString(fmt.Sprintf("  • %s\n", rec.Title))
		}
	}

	helpKeys := []key.Binding{m.keys.rate, m.keys.back, m.keys.quit}
	footer := m.help.ShortHelpView(helpKeys)
	if status := m.status.render(); status != "" {
		footer = fmt.Sprintf("%s\n%s", status, footer)
	}
	return fmt.Sprintf("%s\n%s", b.String(), footer)
}

func (m *Model) renderAdmin() string {
	rows := catalog.Slice(m.adminPage, m.adminRows())

	var b strings.Builder
	b.WriteString(styles.title.Render("Manage Catalog"))
	b.WriteString("\n")

	if m.adminSearching || m.adminPage.Query() != "" {
		prompt := fmt.Sprintf("Search: %s", m.adminPage.Query())
		if m.adminSearching {
			prompt += "▌"
		}
		b.WriteString(prompt)
		b.WriteString("\n")
	}

	for i, movie := range rows {
		cursor := "  "
		if i == m.adminCursor {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-10s %-40s %4d  %s\n", cursor, movie.ShowID, truncate(movie.Title, 40), movie.ReleaseYear, movie.Genre))
	}
	if len(rows) == 0 {
		b.WriteString(styles.help.Render("No titles on this page."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderPageLinks(m.adminPage))
	b.WriteString("\n")

	if m.pendingDelete != "" {
		b.WriteString(styles.warning.Render(fmt.Sprintf("Delete %s? Press y to confirm, any other key to cancel.", m.pendingDelete)))
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.delete, m.keys.prev, m.keys.next, m.keys.back, m.keys.quit}
	footer := m.help.ShortHelpView(helpKeys)
	if status := m.status.render(); status != "" {
		footer = fmt.Sprintf("%s\n%s", status, footer)
	}
	b.WriteString(footer)
	return b.String()
}

func (m *Model) renderUnauthorized() string {
	title := styles.error.Render("Not Authorized")
	body := "Your account does not have access to the admin table."
	footer := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, footer)
}

// renderPageLinks draws the pagination row the same way the admin table
// partitions it: prev/next on the ends, a window around the current page,
// and ellipses for the gaps.
func renderPageLinks(page *catalog.AdminPage) string {
	var parts []string
	for _, link := range page.Links() {
		switch link.Kind {
		case catalog.LinkPrev:
			if link.Disabled {
				parts = append(parts, styles.help.Render("‹ prev"))
			} else {
				parts = append(parts, "‹ prev")
			}
		case catalog.LinkNext:
			if link.Disabled {
				parts = append(parts, styles.help.Render("next ›"))
			} else {
				parts = append(parts, "next ›")
			}
		case catalog.LinkEllipsis:
			parts = append(parts, "…")
		case catalog.LinkPage:
			label := strconv.Itoa(link.Page)
			if link.Current {
				label = styles.success.Render(fmt.Sprintf("[%s]", label))
			}
			parts = append(parts, label)
		}
	}
	return strings.Join(parts, " ")
}

// truncate shortens s to max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	if max == 1 {
		return string(runes[:1])
	}
	return string(runes[:max-1]) + "…"
}
