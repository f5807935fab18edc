// Package services implements the HTTP client for the CineNiche backend.
//
// [Service] is the contract the rest of the client programs against;
// [CineNicheService] is the production implementation. All persistent state
// (sessions, the movie catalog, ratings, recommendations) lives behind the
// remote API; this package is the only place requests are built, errors are
// classified, and the 401 redirect guard is consulted.
//
// Error taxonomy (wrapped sentinels from internal/shared):
//   - network failure      : shared.ErrAPIRequest
//   - non-2xx response     : *StatusError (inspectable status code)
//   - malformed body       : shared.ErrMalformedResponse
//   - 401 unauthenticated  : shared.ErrNotAuthenticated, after arming the
//     [RedirectGuard] unless the call opted out (the session probe does)
//
// No call is ever retried; every method takes a context and is cancelable.
package services
