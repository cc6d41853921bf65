// Package tracker implements the project/task domain: identity, project
// membership, and the task editor. Every operation loads the documents it
// needs, mutates in memory, and saves before returning; a rejected
// operation never writes.
package tracker

import (
	"go.uber.org/zap"

	"taskdeck/internal/store"
)

// Session identifies the authenticated user an operation runs as. It is
// passed explicitly into every call that needs authorization.
type Session struct {
	Username string
}

// Options tune tracker behavior
type Options struct {
	// AdminEmail marks registrations that should be logged as admin signups
	AdminEmail string
	// OwnerOnlyRemove restricts task removal to the project owner. Off by
	// default to match the historical behavior.
	OwnerOnlyRemove bool
}

// Tracker is the domain layer over the JSON document store
type Tracker struct {
	store *store.Store
	log   *zap.Logger
	opts  Options
}

// New creates a tracker backed by s
func New(s *store.Store, log *zap.Logger, opts Options) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{store: s, log: log, opts: opts}
}

// Store exposes the underlying document store
func (t *Tracker) Store() *store.Store { return t.store }
