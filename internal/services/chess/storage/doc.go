// Package storage defines persistence interfaces for chess sessions.
//
// Sessions live only for the lifetime of the process; the in-memory
// implementation lives in the memory subpackage.
//
// Common error types:
//   - game.ErrSessionNotFound: requested session is missing
//   - ErrSessionExists: a session with the same id was already created
package storage
