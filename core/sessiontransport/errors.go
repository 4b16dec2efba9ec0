package sessiontransport

import "errors"

var (
	// ErrNoToken is returned when the request carries no session cookie.
	ErrNoToken = errors.New("sessiontransport: no token")

	// ErrInvalidToken is returned when the cookie signature or session ID is invalid.
	ErrInvalidToken = errors.New("sessiontransport: invalid token")

	// ErrExpiredSession is returned when saving a session whose lifetime already ended.
	ErrExpiredSession = errors.New("sessiontransport: session expired")
)
