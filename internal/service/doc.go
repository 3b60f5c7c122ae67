// Package service holds what the track services share: the ServiceError
// wrapper and the sentinel errors callers check with errors.Is.
//
// The track services themselves live in subpackages:
//
//   - routine: numbers and equations day schedulers
//   - norep: no-repeat word and sentence selector
//   - books: book reading progress tracker
//   - auth: device tokens for the HTTP API
//
// Services receive their store, clock and event emitter through
// constructor injection and never depend on a concrete backend.
package service
