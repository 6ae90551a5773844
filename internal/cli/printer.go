package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/aussiebroadwan/signup/pkg/signup"
)

// Printer renders CLI output and sign-up outcomes.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

var _ signup.Navigator = (*Printer)(nil)

// NewPrinter returns a printer writing to out and err.
func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// ResolveColors turns colors off when asked to, or when NO_COLOR or a dumb
// terminal says so.
func ResolveColors(noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// OnSignUpOutcome implements signup.Navigator.
func (p *Printer) OnSignUpOutcome(o signup.Outcome) {
	switch o.State {
	case signup.StatePending:
		p.Print("%s", p.Dim("… contacting identity provider"))
	case signup.StateAwaitingConfirmation:
		p.Info("Verification code sent to %s (%s)", o.Delivery.Destination, o.Delivery.Medium)
	case signup.StateConfirmed:
		p.Success("Account confirmed")
	case signup.StateFailed:
		p.Error("%s", o.Reason)
	}
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...any) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
	}
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
	}
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

// Print prints a plain message
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Prompt prints label without a trailing newline.
func (p *Printer) Prompt(label string) {
	if p.useColors {
		color.New(color.Bold).Fprint(p.out, label)
	} else {
		fmt.Fprint(p.out, label)
	}
}

// Dim returns dimmed text
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}
