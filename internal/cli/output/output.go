// Package output renders command results for terminals, scripts and agents.
//
// The effective output mode follows the environment: a terminal gets styled
// text, anything else gets markdown. JSON and YAML are always explicit.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/querydef/internal/catalog"
)

// OutputMode selects how results are written.
type OutputMode string

// Mode is a short alias for OutputMode.
type Mode = OutputMode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// Modes lists every accepted mode, for flag completion and validation.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON), string(ModeYAML)}

// Color settings.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Renderer writes results to out and diagnostics to errOut.
type Renderer struct {
	out       io.Writer
	errOut    io.Writer
	isTTY     bool
	errIsTTY  bool
	mode      OutputMode
	styles    *Styles
	errStyles *Styles
	titler    cases.Caser
}

// NewRenderer creates a renderer, detecting whether out and errOut are
// terminals.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTerminals(out, errOut, isTerminal(out), isTerminal(errOut), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state for
// out. Whether errOut is a terminal is still detected.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	return NewRendererWithTerminals(out, errOut, isTTY, isTerminal(errOut), mode)
}

// NewRendererWithTerminals creates a renderer with an explicit terminal
// state for each stream. Each stream is only styled when it is a terminal.
func NewRendererWithTerminals(out, errOut io.Writer, outTTY, errTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{
		out:      out,
		errOut:   errOut,
		isTTY:    outTTY,
		errIsTTY: errTTY,
		mode:     mode,
		titler:   cases.Title(language.English),
	}
	r.SetColor(ColorAuto)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in an int
}

// SetColor forces styling on or off. "auto" styles each stream only when it
// is a terminal.
func (r *Renderer) SetColor(color string) {
	r.styles = NewStyles(newLipgloss(r.out, color, r.isTTY))
	r.errStyles = NewStyles(newLipgloss(r.errOut, color, r.errIsTTY))
}

func newLipgloss(w io.Writer, color string, tty bool) *lipgloss.Renderer {
	lr := lipgloss.NewRenderer(w)
	if color == ColorAlways || (color != ColorNever && tty) {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	return lr
}

// EffectiveMode resolves ModeAuto against the terminal state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether out is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the styles bound to this renderer.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the result stream.
func (r *Renderer) Writer() io.Writer { return r.out }

// Println writes a line to the result stream.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the result stream.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a heading, styled on a terminal and as markdown otherwise.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		return
	}
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	r.Println(style.Render(text))
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.StatusSuccess.String() + " " + r.styles.Success.Render(msg))
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// Error writes an error line to the diagnostic stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.errStyles.StatusFailed.String()+" "+r.errStyles.Error.Render(r.label("error"))+" "+msg)
}

// Diagnostics writes notices and warnings to the diagnostic stream, one per
// line, in the order given.
func (r *Renderer) Diagnostics(diags []catalog.Diagnostic) {
	for _, d := range diags {
		style := r.errStyles.Info
		if d.Severity == catalog.SeverityWarning {
			style = r.errStyles.Warning
		}
		_, _ = fmt.Fprintln(r.errOut, style.Render(r.label(string(d.Severity)))+" "+d.Message)
	}
}

func (r *Renderer) label(severity string) string {
	return r.titler.String(severity) + ":"
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
