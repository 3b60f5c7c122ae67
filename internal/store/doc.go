// Package store defines the key-value persistence contract the track
// services depend on, the fixed record keys, and JSON helpers for reading
// and writing typed records. Backends live under internal/platform.
package store
