package fingerprint

import "errors"

const (
	ipv4NetworkBits = 24
	ipv6NetworkBits = 64
)

// Granularity controls how much of the client address is bound to a token.
type Granularity string

const (
	// GranularityExact binds the full address.
	GranularityExact Granularity = "exact"
	// GranularityNetwork binds the /24 (IPv4) or /64 (IPv6) network.
	GranularityNetwork Granularity = "network"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	return g == GranularityExact || g == GranularityNetwork
}

// Hash names the digest used for tokens.
type Hash string

const (
	// HashSHA256 is the default digest.
	HashSHA256 Hash = "sha256"
	// HashBLAKE2b uses BLAKE2b-256.
	HashBLAKE2b Hash = "blake2b"
)

// Valid reports whether h is a known hash.
func (h Hash) Valid() bool {
	return h == HashSHA256 || h == HashBLAKE2b
}

// Option configures a Generator.
type Option func(*Generator)

// WithGranularity sets the address granularity. Unknown values are ignored.
func WithGranularity(g Granularity) Option {
	return func(gen *Generator) {
		if g.Valid() {
			gen.granularity = g
		}
	}
}

// WithHash sets the digest algorithm. Unknown values are ignored.
func WithHash(h Hash) Option {
	return func(gen *Generator) {
		if h.Valid() {
			gen.hash = h
		}
	}
}

// Validation errors that can be checked with errors.Is()
var (
	// ErrInvalidFingerprint indicates the stored token has an invalid format.
	ErrInvalidFingerprint = errors.New("invalid fingerprint format")

	// ErrMismatch indicates the token doesn't match the current request.
	// This could indicate a session hijacking attempt or a legitimate change of
	// the client's browser or network.
	ErrMismatch = errors.New("fingerprint mismatch")
)
