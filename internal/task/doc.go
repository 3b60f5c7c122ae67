// Package task runs background work off the request path.
// Tasks are pushed onto a bounded in-memory queue and drained by a fixed
// pool of workers. It is used to mirror local writes to the remote store.
package task
