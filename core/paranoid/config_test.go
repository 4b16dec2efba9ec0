package paranoid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/pkg/fingerprint"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     paranoid.Config
		wantErr error
	}{
		{name: "default", cfg: paranoid.DefaultConfig()},
		{name: "zero value", cfg: paranoid.Config{}},
		{name: "multiple network blake2b", cfg: paranoid.Config{
			TokenRetention:     paranoid.RetentionMultiple,
			AddressGranularity: fingerprint.GranularityNetwork,
			Hash:               fingerprint.HashBLAKE2b,
		}},
		{name: "bad retention", cfg: paranoid.Config{TokenRetention: "many"}, wantErr: paranoid.ErrInvalidTokenRetention},
		{name: "bad granularity", cfg: paranoid.Config{AddressGranularity: "full"}, wantErr: paranoid.ErrInvalidAddressGranularity},
		{name: "bad hash", cfg: paranoid.Config{Hash: "md5"}, wantErr: paranoid.ErrInvalidHashAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = paranoid.New(tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	g, err := paranoid.New(paranoid.Config{})
	assert.NoError(t, err)
	assert.Equal(t, paranoid.DefaultConfig(), g.Config())
	assert.Equal(t, paranoid.HandlerDefault, g.InvalidSessionHandler().Kind())
}
