// Package catalog holds the client-side movie catalog state: a shared store
// over the full movie list, filter derivation, the incremental reveal used by
// browse views, and the offset pagination used by the admin panel.
package catalog
