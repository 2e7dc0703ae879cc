package services

import "errors"

// Domain errors returned by the lifecycle services. Controllers translate
// these into HTTP statuses; nothing here is retried.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrGuestNotFound   = errors.New("guest not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrAccessDenied = errors.New("access denied")

	ErrCapacityExceeded  = errors.New("maximum number of guests already reached")
	ErrAlreadyJoined     = errors.New("already registered on this event")
	ErrSelfJoinForbidden = errors.New("cannot join your own event")

	// ErrConflict covers a guarded write that lost a race and no longer
	// matches any specific failure on re-read.
	ErrConflict = errors.New("conflicting concurrent update")
)
