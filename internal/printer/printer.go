// Package printer handles user-facing CLI output: colored status lines,
// section headers, and the error box printed on command failure. Log output
// goes through zerolog; this package is only for text meant to be read.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/term"
)

// ANSI color codes (Tokyo Night palette)
const (
	colorReset     = "\033[0m"
	colorRed       = "\033[38;2;247;118;142m" // #f7768e
	colorGreen     = "\033[38;2;158;206;106m" // #9ece6a
	colorYellow    = "\033[38;2;224;175;104m" // #e0af68
	colorGray      = "\033[38;2;86;95;137m"   // #565f89 (comment)
	colorBold      = "\033[1m"
	colorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
)

type ctxKey struct{}

// Printer writes formatted output. Colors are dropped when the destination
// is not a terminal or NO_COLOR is set.
type Printer struct {
	writer io.Writer
	color  bool
}

// New creates a Printer for w, detecting color support from w itself.
func New(w io.Writer) *Printer {
	return &Printer{writer: w, color: supportsColor(w)}
}

func supportsColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewContext returns a context with the printer attached.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates a default one.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// FatalError prints a formatted error box and does NOT exit.
// Caller owns the exit code.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.printValidationErrors(err, fieldErrs)
		return
	}

	lines := []string{
		p.colorize(colorRed, "╭ Error"),
		p.colorize(colorRed, "│") + " " + p.colorize(colorGray, err.Error()),
		p.colorize(colorRed, "╵"),
	}
	p.write(strings.Join(lines, "\n") + "\n")
}

func (p *Printer) printValidationErrors(wrappedErr error, fieldErrs criterio.FieldErrors) {
	// Pull the wrap context off the front ("load config: invalid config:").
	errStr := wrappedErr.Error()
	errContext := ""
	if idx := strings.Index(errStr, fieldErrs.Error()); idx > 0 {
		errContext = strings.TrimSuffix(errStr[:idx], ": ")
	}

	p.write(p.colorize(colorRed, "╭ Validation Error") + "\n")
	if errContext != "" {
		p.write(p.colorize(colorRed, "│") + " " + p.colorize(colorGray, errContext) + "\n")
		p.write(p.colorize(colorRed, "│") + "\n")
	}

	for _, fe := range fieldErrs {
		line := p.colorize(colorRed, "│") + " " + p.colorize(colorRed, Cross) + " "
		if fe.Field != "" {
			line += p.colorize(colorGray, fe.Field+": ")
		}
		line += fe.Err.Error()
		p.write(line + "\n")
	}
	p.write(p.colorize(colorRed, "╵") + "\n")
}

// Errorf prints an error message in red.
func (p *Printer) Errorf(format string, args ...any) {
	p.write(p.colorize(colorRed, Cross+" "+fmt.Sprintf(format, args...)) + "\n")
}

// Successf prints a success message in green.
func (p *Printer) Successf(format string, args ...any) {
	p.write(p.colorize(colorGreen, Check+" "+fmt.Sprintf(format, args...)) + "\n")
}

// Success prints a success message with details on a separate line.
func (p *Printer) Success(message string, details string) {
	p.write(p.colorize(colorGreen, Check+" "+message) + "\n")
	if details != "" {
		p.write("  " + p.colorize(colorGray, details) + "\n")
	}
}

// Infof prints an info message in gray.
func (p *Printer) Infof(format string, args ...any) {
	p.write(p.colorize(colorGray, Dot+" "+fmt.Sprintf(format, args...)) + "\n")
}

// Warnf prints a warning message in yellow.
func (p *Printer) Warnf(format string, args ...any) {
	p.write(p.colorize(colorYellow, Dot+" "+fmt.Sprintf(format, args...)) + "\n")
}

// Printf prints a plain message without colors.
func (p *Printer) Printf(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...) + "\n")
}

// Section prints a section header (bold + underlined).
func (p *Printer) Section(title string) {
	if p.color {
		p.write(colorBold + colorUnderline + title + colorReset + "\n")
		return
	}
	p.write(title + "\n")
}

// CheckItem prints an indented item with a green checkmark.
func (p *Printer) CheckItem(label, detail string) {
	p.printItem(colorGreen, Check, label, detail)
}

// WarnItem prints an indented item with a yellow dot.
func (p *Printer) WarnItem(label, detail string) {
	p.printItem(colorYellow, Dot, label, detail)
}

func (p *Printer) printItem(color, symbol, label, detail string) {
	line := "  " + p.colorize(color, symbol) + " " + label
	if detail != "" {
		line += ": " + detail
	}
	p.write(line + "\n")
}

func (p *Printer) colorize(color, text string) string {
	if !p.color {
		return text
	}
	return color + text + colorReset
}

func (p *Printer) write(s string) {
	_, _ = p.writer.Write([]byte(s))
}
