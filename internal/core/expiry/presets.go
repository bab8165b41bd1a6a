package expiry

import (
	"encoding/json"
	"fmt"
	"time"
)

// Preset is a named expiry duration offered to uploaders.
type Preset struct {
	Label    string        `json:"label"`
	Duration time.Duration `json:"-"`
	Display  string        `json:"display"`
}

// MarshalJSON includes the duration as milliseconds under "value".
func (p Preset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label   string `json:"label"`
		Value   int64  `json:"value"`
		Display string `json:"display"`
	}{p.Label, p.Duration.Milliseconds(), p.Display})
}

// Presets lists the supported expiry durations, shortest first.
var Presets = []Preset{
	{Label: "15 minutes", Duration: 15 * time.Minute, Display: "15m"},
	{Label: "1 hour", Duration: time.Hour, Display: "1h"},
	{Label: "6 hours", Duration: 6 * time.Hour, Display: "6h"},
	{Label: "1 day", Duration: 24 * time.Hour, Display: "1d"},
	{Label: "3 days", Duration: 3 * 24 * time.Hour, Display: "3d"},
	{Label: "1 week", Duration: 7 * 24 * time.Hour, Display: "1w"},
}

// ParseExpiry resolves a preset by its display code.
func ParseExpiry(display string) (Preset, error) {
	for _, p := range Presets {
		if p.Display == display {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown expiry %q", display)
}

// ExpiryTimestamp returns the instant ttl after now.
func ExpiryTimestamp(ttl time.Duration, now time.Time) time.Time {
	return now.Add(ttl)
}

// FormatTimeRemaining renders the time left until expiresAt in coarse units:
// "2d 3h", "4h 12m", "9m" or "Expired".
func FormatTimeRemaining(expiresAt, now time.Time) string {
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return "Expired"
	}

	minutes := int(remaining / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours%24)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
