// Package domain contains the core learning-progress entities: tracks, session
// tokens, per-track progress ledgers, no-repeat corpus state and book progress.
// Types here are plain values with invariants enforced by their methods; content
// generation lives in the curriculum subpackage and persistence in the services.
package domain
