package tracker

import (
	"testing"

	"go.uber.org/zap"

	"taskdeck/internal/store"
)

// newTestTracker returns a tracker backed by a throwaway data directory
func newTestTracker(t *testing.T, opts Options) *Tracker {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if opts.AdminEmail == "" {
		opts.AdminEmail = "admin@gmail.com"
	}
	return New(st, zap.NewNop(), opts)
}

// mustRegister creates a user with a derived email and fails the test on error
func mustRegister(t *testing.T, trk *Tracker, username string) Session {
	t.Helper()
	if err := trk.Register(username, "pw-"+username, username+"@example.com"); err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return Session{Username: username}
}
