// Package auth checks bearer credentials against the configured shared
// secret.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	fingerprintInfo = "tempbox secret fingerprint v1"
	fingerprintSize = 8
)

// Verifier compares presented secrets with the configured one. Both sides
// are reduced to an HMAC under a random per-process key before comparison,
// so the comparison time does not depend on the secret's length or content.
type Verifier struct {
	key         []byte
	want        []byte
	fingerprint string
}

// NewVerifier returns a verifier for secret. An empty secret produces a
// verifier that rejects everything.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return &Verifier{}, nil
	}

	key := make([]byte, sha512.Size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	fp, err := Fingerprint(secret)
	if err != nil {
		return nil, err
	}

	v := &Verifier{key: key, fingerprint: fp}
	v.want = v.sum(secret)
	return v, nil
}

// Fingerprint returns a short, stable identifier for secret that is safe to
// log. Two deployments print the same fingerprint only when they share the
// secret.
func Fingerprint(secret string) (string, error) {
	reader := hkdf.New(sha512.New, []byte(secret), nil, []byte(fingerprintInfo))
	out := make([]byte, fingerprintSize)
	if _, err := io.ReadFull(reader, out); err != nil {
		return "", fmt.Errorf("derive fingerprint: %w", err)
	}
	return hex.EncodeToString(out), nil
}

// Fingerprint returns the configured secret's fingerprint, or "" when no
// secret is configured.
func (v *Verifier) Fingerprint() string {
	if !v.Enabled() {
		return ""
	}
	return v.fingerprint
}

// Enabled reports whether a secret is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && v.want != nil
}

// Verify reports whether presented matches the configured secret.
func (v *Verifier) Verify(presented string) bool {
	if !v.Enabled() || presented == "" {
		return false
	}
	return hmac.Equal(v.sum(presented), v.want)
}

// VerifyRequest checks the request's Authorization bearer token.
func (v *Verifier) VerifyRequest(r *http.Request) bool {
	return v.Verify(BearerToken(r))
}

func (v *Verifier) sum(s string) []byte {
	m := hmac.New(sha512.New, v.key)
	_, _ = m.Write([]byte(s))
	return m.Sum(nil)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
