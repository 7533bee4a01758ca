// Package ui provides the Bubble Tea TUI for datascope.
package ui

import "github.com/google/uuid"

// pageLoadedMsg is sent when a collection page fetch completes. Token ties
// the response to the dispatch that requested it; the state store discards
// responses whose token is no longer the latest, so an out-of-order network
// response can never overwrite newer data.
type pageLoadedMsg[R any] struct {
	Token uuid.UUID
	Items []R
	Total int
	Err   error
}
