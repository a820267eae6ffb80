// Package game defines the chess session domain shared by the protocol,
// storage, mailbox and transport packages.
//
// Types here carry no behavior beyond validation and copying; move legality is
// owned by an Engine implementation and session lifetime by a store.
package game
