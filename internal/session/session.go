// Package session holds the per-run identity. The session ID ends up in
// sandbox commit messages and state file names so that separate runs can be
// told apart after the fact.
package session

import (
	"github.com/google/uuid"
)

type Session struct {
	ID string
}

func New() Session {
	return Session{ID: uuid.NewString()}
}

// NewWithID is used by tests and by sandbox replays which need a stable ID.
func NewWithID(id string) Session {
	if id == "" {
		return New()
	}
	return Session{ID: id}
}
