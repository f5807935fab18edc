// Package models defines domain entities shared across the CineNiche client.
//
// The package contains two categories of types:
//
// 1. Catalog records fetched from the backend:
//   - [Movie] : A catalog entry, immutable once fetched, keyed by ShowID
//   - [Filter] : The active browse filter (genre and free-text search)
//
// 2. Session and interaction types:
//   - [Session] : The authenticated identity and role set from the session probe
//   - [RatingSubmission] : A user rating posted to the backend
//   - [AverageRating] : Aggregate rating for a single show
//
// Genre and cast are free text on the wire (comma separated); the split
// helpers on [Movie] are the single place that parsing happens.
package models
