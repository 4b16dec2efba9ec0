package paranoid

import (
	"fmt"

	"github.com/dmitrymomot/paranoid/pkg/fingerprint"
)

// TokenRetention controls how many trusted tokens a session keeps.
type TokenRetention string

const (
	// RetentionSingle keeps only the most recent token.
	RetentionSingle TokenRetention = "single"
	// RetentionMultiple keeps every token written to the session, in arrival order.
	RetentionMultiple TokenRetention = "multiple"
)

// Valid reports whether r is a known retention mode.
func (r TokenRetention) Valid() bool {
	return r == RetentionSingle || r == RetentionMultiple
}

// DefaultRememberCookieName is the persistent-login cookie cleared on mismatch.
const DefaultRememberCookieName = "remember_token"

// RememberCookie describes the host's persistent-login cookie.
// When Enabled, a mismatch also expires the cookie so the client cannot
// silently re-authenticate.
type RememberCookie struct {
	Enabled bool   `env:"PARANOID_REMEMBER_COOKIE_ENABLED" envDefault:"false"`
	Name    string `env:"PARANOID_REMEMBER_COOKIE_NAME" envDefault:"remember_token"`
}

// Config holds guard settings. It is read once at startup.
type Config struct {
	TokenRetention     TokenRetention          `env:"PARANOID_TOKEN_RETENTION" envDefault:"single"`
	AddressGranularity fingerprint.Granularity `env:"PARANOID_ADDRESS_GRANULARITY" envDefault:"exact"`
	Hash               fingerprint.Hash        `env:"PARANOID_HASH" envDefault:"sha256"`
	RememberCookie     RememberCookie
}

// DefaultConfig returns single retention, exact granularity and SHA-256.
func DefaultConfig() Config {
	return Config{
		TokenRetention:     RetentionSingle,
		AddressGranularity: fingerprint.GranularityExact,
		Hash:               fingerprint.HashSHA256,
		RememberCookie: RememberCookie{
			Name: DefaultRememberCookieName,
		},
	}
}

// withDefaults fills empty fields so a zero Config behaves like DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TokenRetention == "" {
		c.TokenRetention = def.TokenRetention
	}
	if c.AddressGranularity == "" {
		c.AddressGranularity = def.AddressGranularity
	}
	if c.Hash == "" {
		c.Hash = def.Hash
	}
	if c.RememberCookie.Name == "" {
		c.RememberCookie.Name = def.RememberCookie.Name
	}
	return c
}

// Validate reports unknown enumeration values. Empty values are allowed and
// replaced with defaults by New.
func (c Config) Validate() error {
	c = c.withDefaults()
	if !c.TokenRetention.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTokenRetention, c.TokenRetention)
	}
	if !c.AddressGranularity.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAddressGranularity, c.AddressGranularity)
	}
	if !c.Hash.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidHashAlgorithm, c.Hash)
	}
	return nil
}
