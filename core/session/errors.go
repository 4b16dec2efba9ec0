package session

import "errors"

var (
	// ErrExpired is returned when a session has expired and is no longer valid.
	ErrExpired = errors.New("session has expired")
	// ErrNotFound is returned when a session cannot be found in the store.
	ErrNotFound = errors.New("session not found")
	// ErrDestroyed is returned by Manager.Store after a cleared session was deleted.
	// Transports use it as the signal to expire the client cookie.
	ErrDestroyed = errors.New("session destroyed")
	// ErrNilSession is returned when a nil session is passed to a store.
	ErrNilSession = errors.New("nil session")
	// ErrSaveSession is returned when saving a session to the store fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession is returned when deleting a session from the store fails.
	ErrDeleteSession = errors.New("failed to delete session")
)
