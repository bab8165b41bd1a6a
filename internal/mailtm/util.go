package mailtm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/hay-kot/tempbox/pkg/randid"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// GenerateAddress returns a random local part at domain. The local part is
// eight random characters followed by the base-36 millisecond clock, so two
// addresses generated in the same millisecond still differ.
func GenerateAddress(domain string, now time.Time) string {
	return randid.Generate(8) + strconv.FormatInt(now.UnixMilli(), 36) + "@" + domain
}

// GeneratePassword returns a random 26 character password.
func GeneratePassword() string {
	return randid.Generate(26)
}

// FormatMessageDate renders t relative to now, e.g. "3 minutes ago".
func FormatMessageDate(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// AnnotateReceived fills in Message.Received for each message that has a
// parseable CreatedAt.
func AnnotateReceived(msgs []Message, now time.Time) {
	for i := range msgs {
		t, err := time.Parse(time.RFC3339, msgs[i].CreatedAt)
		if err != nil {
			continue
		}
		msgs[i].Received = FormatMessageDate(t, now)
	}
}

// ActiveDomains filters domains down to those open for public sign up.
func ActiveDomains(domains []Domain) []Domain {
	out := make([]Domain, 0, len(domains))
	for _, d := range domains {
		if d.IsActive && !d.IsPrivate {
			out = append(out, d)
		}
	}
	return out
}

// Inbox is a freshly provisioned mailbox.
type Inbox struct {
	Account  Account `json:"account"`
	Token    string  `json:"token"`
	Password string  `json:"password"`
}

// NewInbox provisions a mailbox on the first active public domain with a
// random address and password and returns a token for it.
func (c *Client) NewInbox(ctx context.Context, now time.Time) (Inbox, error) {
	domains, err := c.Domains(ctx, 1)
	if err != nil {
		return Inbox{}, fmt.Errorf("list domains: %w", err)
	}

	active := ActiveDomains(domains.Members)
	if len(active) == 0 {
		return Inbox{}, ErrNoDomains
	}

	creds := Credentials{
		Address:  GenerateAddress(active[0].Domain, now),
		Password: GeneratePassword(),
	}

	account, err := c.CreateAccount(ctx, creds)
	if err != nil {
		return Inbox{}, fmt.Errorf("create account: %w", err)
	}

	tok, err := c.Token(ctx, creds)
	if err != nil {
		return Inbox{}, fmt.Errorf("issue token: %w", err)
	}

	return Inbox{Account: account, Token: tok.Token, Password: creds.Password}, nil
}
