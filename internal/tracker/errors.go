package tracker

// The tracker reports failures through a small typed taxonomy so callers
// can distinguish bad input from missing records from permission problems.
// Disk failures pass through as *store.StorageError.

// ValidationError reports malformed or duplicate input
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthorizationError reports an operation attempted by the wrong role
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// NotFoundError reports a missing user, project, or task
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// StateError reports an operation blocked by the record's current state,
// such as a login on an inactive account or an edit by a non-assignee.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }
