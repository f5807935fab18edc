package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/cineniche/cinectl/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

// FilterValue feeds the list's "/" filter; it matches against title,
// director, and cast so searching works the same as the store filter.
func (i movieItem) FilterValue() string {
	return fmt.Sprintf("%s %s %s", i.movie.Title, i.movie.Director, i.movie.Cast)
}
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := i.movie.Genre
	if i.movie.ReleaseYear > 0 {
		desc = fmt.Sprintf("%d • %s", i.movie.ReleaseYear, desc)
	}
	if i.movie.Rating != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Rating)
	}
	return desc
}
