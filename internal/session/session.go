// Package session carries the acting persona through a request. The persona
// is a demo convenience, not a security principal: it is whatever the client
// last wrote, with no validation against a user directory.
package session

import "context"

// Store is the single-slot session backend. Implementations are
// last-write-wins; Get returns "" (or 0) when nothing was stored yet.
type Store interface {
	GetPersona(ctx context.Context) (string, error)
	SetPersona(ctx context.Context, persona string) error
	IncrUploadCount(ctx context.Context) (int64, error)
}

// Context is the per-request session view handed to handlers.
type Context struct {
	Persona string
}
