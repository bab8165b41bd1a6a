package mailtm

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.co"))
	assert.False(t, IsValidEmail("a@b"))
	assert.False(t, IsValidEmail("a b@c.d"))
	assert.False(t, IsValidEmail(""))
}

func TestGenerateAddress(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	a := GenerateAddress("mail.test", now)
	b := GenerateAddress("mail.test", now)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "@mail.test"))
	assert.True(t, IsValidEmail(a))
}

func TestFormatMessageDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "0 minutes ago"},
		{time.Minute, "1 minute ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23 * time.Hour, "23 hours ago"},
		{25 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMessageDate(now.Add(-tt.ago), now))
		})
	}
}

func TestAnnotateReceived(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msgs := []Message{
		{ID: "a", CreatedAt: now.Add(-2 * time.Hour).Format(time.RFC3339)},
		{ID: "b", CreatedAt: "not a date"},
	}

	AnnotateReceived(msgs, now)
	assert.Equal(t, "2 hours ago", msgs[0].Received)
	assert.Empty(t, msgs[1].Received)
}

func TestActiveDomains(t *testing.T) {
	got := ActiveDomains([]Domain{
		{Domain: "a", IsActive: true},
		{Domain: "b", IsActive: true, IsPrivate: true},
		{Domain: "c"},
	})
	assert.Equal(t, []Domain{{Domain: "a", IsActive: true}}, got)
}
