// Package repositories implements SQLite persistence for the local catalog
// cache.
//
// The cache is a read-optimized mirror of the backend catalog: sync replaces
// it wholesale, and offline commands read from it without touching the
// network. Rows are keyed by the backend's show id.
package repositories
