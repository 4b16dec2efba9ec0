package session

import "time"

const (
	// DefaultTTL is the session lifetime used when none is configured.
	DefaultTTL = 24 * time.Hour
	// DefaultTouchInterval is the minimum time between expiration refreshes.
	DefaultTouchInterval = 5 * time.Minute
)

// Config holds session manager settings loadable from the environment.
type Config struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the default session settings.
func DefaultConfig() Config {
	return Config{
		TTL:           DefaultTTL,
		TouchInterval: DefaultTouchInterval,
	}
}
