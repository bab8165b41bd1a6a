package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)
	require.True(t, v.Enabled())

	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify("s3cre"))
	assert.False(t, v.Verify("s3cret "))
	assert.False(t, v.Verify(""))
}

func TestVerifier_EmptySecretRejectsAll(t *testing.T) {
	v, err := NewVerifier("")
	require.NoError(t, err)

	assert.False(t, v.Enabled())
	assert.False(t, v.Verify(""))
	assert.False(t, v.Verify("anything"))

	var nilV *Verifier
	assert.False(t, nilV.Verify("anything"))
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint("s3cret")
	require.NoError(t, err)
	assert.Len(t, a, 2*fingerprintSize)
	assert.NotContains(t, a, "s3cret")

	again, err := Fingerprint("s3cret")
	require.NoError(t, err)
	assert.Equal(t, a, again, "stable across calls")

	other, err := Fingerprint("s3cret2")
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	v1, err := NewVerifier("s3cret")
	require.NoError(t, err)
	v2, err := NewVerifier("s3cret")
	require.NoError(t, err)
	assert.Equal(t, a, v1.Fingerprint())
	assert.Equal(t, v1.Fingerprint(), v2.Fingerprint(), "independent of the per-process key")
	assert.NotEqual(t, v1.key, v2.key)

	empty, err := NewVerifier("")
	require.NoError(t, err)
	assert.Empty(t, empty.Fingerprint())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", ""},
		{"bearer", "Bearer abc", "abc"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"basic", "Basic abc", ""},
		{"no token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(r))
		})
	}
}

func TestVerifyRequest(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/api/cleanup", nil)
	assert.False(t, v.VerifyRequest(r))

	r.Header.Set("Authorization", "Bearer s3cret")
	assert.True(t, v.VerifyRequest(r))
}
