// Package postgres provides the PostgreSQL implementation of the
// store.KeyValueStore contract. It is used as the remote mirror backend:
// several devices can share one database, each under its own namespace.
package postgres
