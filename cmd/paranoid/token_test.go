package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/pkg/fingerprint"
)

// runTokenCmd executes the token command with every flag set explicitly,
// since flag values stick to the package-level command between runs.
func runTokenCmd(t *testing.T, addr, ua, gran, hash string, verbose bool) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	args := []string{"token", "--addr", addr, "--ua", ua, "--granularity", gran, "--hash", hash}
	if verbose {
		args = append(args, "-v")
	} else {
		args = append(args, "--verbose=false")
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		out, err := runTokenCmd(t, "192.0.2.1", "foo", "exact", "sha256", false)
		require.NoError(t, err)
		assert.Equal(t, fingerprint.Generate("192.0.2.1", "foo")+"\n", out)
	})

	t.Run("network_granularity", func(t *testing.T) {
		a, err := runTokenCmd(t, "192.0.2.1", "foo", "network", "sha256", false)
		require.NoError(t, err)
		b, err := runTokenCmd(t, "192.0.2.77", "foo", "network", "sha256", false)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("blake2b", func(t *testing.T) {
		out, err := runTokenCmd(t, "192.0.2.1", "foo", "exact", "blake2b", false)
		require.NoError(t, err)

		gen := fingerprint.NewGenerator(fingerprint.WithHash(fingerprint.HashBLAKE2b))
		assert.Equal(t, gen.Token("192.0.2.1", "foo")+"\n", out)
	})

	t.Run("verbose", func(t *testing.T) {
		out, err := runTokenCmd(t, "2001:db8::1", "", "network", "sha256", true)
		require.NoError(t, err)

		assert.Contains(t, out, "address:    "+fingerprint.NormalizeAddress("2001:db8::1", fingerprint.GranularityNetwork))
		assert.Contains(t, out, "user agent: "+fingerprint.NoUserAgent)
		assert.Equal(t, 4, strings.Count(out, "\n"))
	})

	t.Run("invalid_granularity", func(t *testing.T) {
		_, err := runTokenCmd(t, "192.0.2.1", "foo", "subnet", "sha256", false)
		assert.ErrorIs(t, err, paranoid.ErrInvalidAddressGranularity)
	})

	t.Run("invalid_hash", func(t *testing.T) {
		_, err := runTokenCmd(t, "192.0.2.1", "foo", "exact", "md5", false)
		assert.ErrorIs(t, err, paranoid.ErrInvalidHashAlgorithm)
	})
}
