// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts the track services to a JSON API used by
// the app's screens.
package api
