package paranoid

import "errors"

var (
	// ErrSessionMismatch is the cause attached to the default 401 response.
	ErrSessionMismatch = errors.New("paranoid: session fingerprint mismatch")

	// ErrInvalidTokenRetention is returned for an unknown retention mode.
	ErrInvalidTokenRetention = errors.New("paranoid: invalid token retention")

	// ErrInvalidAddressGranularity is returned for an unknown address granularity.
	ErrInvalidAddressGranularity = errors.New("paranoid: invalid address granularity")

	// ErrInvalidHashAlgorithm is returned for an unknown hash algorithm.
	ErrInvalidHashAlgorithm = errors.New("paranoid: invalid hash algorithm")

	// ErrRouteNotResolved is logged when a named redirect target cannot be resolved.
	ErrRouteNotResolved = errors.New("paranoid: redirect route not resolved")
)
