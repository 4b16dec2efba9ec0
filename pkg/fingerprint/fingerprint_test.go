package fingerprint_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paranoid/pkg/clientip"
	"github.com/dmitrymomot/paranoid/pkg/fingerprint"
)

func createTestRequest(remoteAddr, userAgent string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("known digest", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			"8bd77fbf743b112771bdb27c009d691c3b348a3cbf26b09af15e89f40c41074c",
			fingerprint.Generate("192.0.2.1", "foo"))
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		a := fingerprint.Generate("192.0.2.1", "Mozilla/5.0")
		b := fingerprint.Generate("192.0.2.1", "Mozilla/5.0")
		assert.Equal(t, a, b)
		assert.Regexp(t, "^[a-f0-9]{64}$", a)
	})

	t.Run("different user agents differ", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t,
			fingerprint.Generate("192.0.2.1", "foo"),
			fingerprint.Generate("192.0.2.1", "bar"))
	})

	t.Run("missing user agent uses placeholder", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			"5740240cace51cfb76d61e08ac4f48eac87f9741736f21fb61d8f28197067b4f",
			fingerprint.Generate("203.0.113.7", ""))
		assert.Equal(t,
			fingerprint.Generate("203.0.113.7", fingerprint.NoUserAgent),
			fingerprint.Generate("203.0.113.7", ""))
	})
}

func TestNormalizeAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		address     string
		granularity fingerprint.Granularity
		want        string
	}{
		{"exact keeps address", "192.168.1.5", fingerprint.GranularityExact, "192.168.1.5"},
		{"exact trims", " 192.168.1.5 ", fingerprint.GranularityExact, "192.168.1.5"},
		{"exact keeps malformed", "garbage", fingerprint.GranularityExact, "garbage"},
		{"network ipv4", "192.168.1.5", fingerprint.GranularityNetwork, "192.168.1.0"},
		{"network ipv4 same net", "192.168.1.9", fingerprint.GranularityNetwork, "192.168.1.0"},
		{"network ipv4 other net", "192.168.2.5", fingerprint.GranularityNetwork, "192.168.2.0"},
		{"network ipv6", "2001:db8:1:2:3:4:5:6", fingerprint.GranularityNetwork, "2001:db8:1:2::"},
		{"network mapped ipv4", "::ffff:10.1.2.3", fingerprint.GranularityNetwork, "10.1.2.0"},
		{"network malformed", "garbage", fingerprint.GranularityNetwork, clientip.Placeholder},
		{"network placeholder", clientip.Placeholder, fingerprint.GranularityNetwork, clientip.Placeholder},
		{"network empty", "", fingerprint.GranularityNetwork, clientip.Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fingerprint.NormalizeAddress(tt.address, tt.granularity))
		})
	}
}

func TestGenerator(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator()
		assert.Equal(t, fingerprint.GranularityExact, gen.Granularity())
		assert.Equal(t, fingerprint.HashSHA256, gen.Hash())
	})

	t.Run("unknown options ignored", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator(
			fingerprint.WithGranularity("subnet"),
			fingerprint.WithHash("md5"),
		)
		assert.Equal(t, fingerprint.GranularityExact, gen.Granularity())
		assert.Equal(t, fingerprint.HashSHA256, gen.Hash())
	})

	t.Run("from request uses remote addr", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator()
		req := createTestRequest("192.0.2.1:4321", "foo", nil)
		assert.Equal(t, fingerprint.Generate("192.0.2.1", "foo"), gen.FromRequest(req))
	})

	t.Run("from request prefers forwarded for", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator()
		req := createTestRequest("10.0.0.1:4321", "foo", map[string]string{
			"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		})
		assert.Equal(t, fingerprint.Generate("203.0.113.7", "foo"), gen.FromRequest(req))
	})

	t.Run("network granularity groups neighbours", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator(fingerprint.WithGranularity(fingerprint.GranularityNetwork))

		a := gen.Token("192.168.1.5", "foo")
		b := gen.Token("192.168.1.9", "foo")
		c := gen.Token("192.168.2.5", "foo")

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
	})

	t.Run("exact granularity separates neighbours", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator()
		assert.NotEqual(t, gen.Token("192.168.1.5", "foo"), gen.Token("192.168.1.9", "foo"))
	})

	t.Run("blake2b", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator(fingerprint.WithHash(fingerprint.HashBLAKE2b))
		assert.Equal(t,
			"16470f4b07ec71043d7c939f17b715e4742d5bad033d67de0b482e47eaf2b097",
			gen.Token("192.0.2.1", "foo"))
	})

	t.Run("validate", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator()
		req := createTestRequest("192.0.2.1:4321", "foo", nil)

		require.NoError(t, gen.Validate(req, gen.FromRequest(req)))
		assert.ErrorIs(t, gen.Validate(req, fingerprint.Generate("192.0.2.1", "bar")), fingerprint.ErrMismatch)
		assert.ErrorIs(t, gen.Validate(req, "short"), fingerprint.ErrInvalidFingerprint)
	})
}
