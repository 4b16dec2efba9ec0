package fingerprint

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"net/netip"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/dmitrymomot/paranoid/pkg/clientip"
)

const (
	// NoUserAgent replaces a missing User-Agent header.
	NoUserAgent = "no user agent"
	// TokenLen is the length of a hex-encoded token.
	TokenLen = 64
)

// Generate computes the SHA-256 token for an already normalized address and a user agent.
func Generate(address, userAgent string) string {
	return HashSHA256.sum(address, userAgent)
}

// NormalizeAddress applies granularity to a raw client address.
//
// In exact mode the trimmed address is returned even when malformed.
// In network mode IPv4 is reduced to its /24 network and IPv6 to its /64
// network; IPv4-mapped IPv6 counts as IPv4. An address that does not parse
// becomes clientip.Placeholder.
func NormalizeAddress(address string, granularity Granularity) string {
	address = strings.TrimSpace(address)
	if granularity != GranularityNetwork {
		return address
	}

	ip, err := netip.ParseAddr(address)
	if err != nil {
		return clientip.Placeholder
	}
	ip = ip.Unmap()

	bits := ipv6NetworkBits
	if ip.Is4() {
		bits = ipv4NetworkBits
	}
	prefix, err := ip.Prefix(bits)
	if err != nil {
		return clientip.Placeholder
	}
	return prefix.Addr().String()
}

// Generator computes session tokens from requests.
// A Generator is immutable and safe for concurrent use.
type Generator struct {
	granularity Granularity
	hash        Hash
}

// NewGenerator creates a Generator with exact granularity and SHA-256 unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		granularity: GranularityExact,
		hash:        HashSHA256,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Token returns the token for a raw address and user agent.
func (g *Generator) Token(address, userAgent string) string {
	return g.hash.sum(NormalizeAddress(address, g.granularity), userAgent)
}

// FromRequest returns the token for the request's client address and User-Agent.
func (g *Generator) FromRequest(r *http.Request) string {
	return g.Token(clientip.Address(r), r.UserAgent())
}

// Validate checks that token matches the request.
// It returns ErrInvalidFingerprint for a malformed token and ErrMismatch otherwise.
func (g *Generator) Validate(r *http.Request, token string) error {
	if len(token) != TokenLen {
		return ErrInvalidFingerprint
	}
	if _, err := hex.DecodeString(token); err != nil {
		return ErrInvalidFingerprint
	}
	if !Equal(g.FromRequest(r), token) {
		return ErrMismatch
	}
	return nil
}

// Granularity returns the configured address granularity.
func (g *Generator) Granularity() Granularity {
	return g.granularity
}

// Hash returns the configured hash algorithm.
func (g *Generator) Hash() Hash {
	return g.hash
}

// Equal compares two tokens in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (h Hash) sum(address, userAgent string) string {
	if userAgent == "" {
		userAgent = NoUserAgent
	}
	data := []byte(address + "|" + userAgent)

	var digest [32]byte
	switch h {
	case HashBLAKE2b:
		digest = blake2b.Sum256(data)
	default:
		digest = sha256.Sum256(data)
	}
	return hex.EncodeToString(digest[:])
}
