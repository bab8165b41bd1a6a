// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/tempbox/internal/core/styles"
)

type ctxKey struct{}

// Printer writes human-oriented output. Machine-readable output belongs on
// stdout and goes through iojson instead.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.TextPrimary.Render("•"), format, args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.TextSuccess.Render(styles.IconCheck), format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.TextWarning.Render(styles.IconWarning), format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.TextError.Render(styles.IconCross), format, args...)
}

func (p *Printer) line(icon, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}
