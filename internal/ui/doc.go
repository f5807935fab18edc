// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the CineNiche catalog:
//  1. [GateView] : Session probe before anything renders
//  2. [BrowseView] : Browse the catalog with genre filtering and incremental reveal
//  3. [DetailView] : Title details with recommendations and rating
//  4. [AdminView] : Paginated admin table with delete support
//  5. [UnauthorizedView] : Shown when a viewer opens the admin table
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Mutations go through the catalog store, which notifies the status line; the
// model never edits catalog state directly.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
