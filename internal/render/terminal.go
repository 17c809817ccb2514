package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultSwatchWidth = 8

// Terminal paints swatches with background colours, degrading to the
// terminal's colour profile. On an interactive terminal it then waits for
// Enter before returning.
type Terminal struct {
	out     *termenv.Output
	in      io.Reader
	width   int
	wait    bool
	profile *termenv.Profile
}

// TerminalOption configures a Terminal renderer.
type TerminalOption func(*Terminal)

// WithSwatchWidth sets the number of cells per swatch.
func WithSwatchWidth(width int) TerminalOption {
	return func(t *Terminal) {
		if width > 0 {
			t.width = width
		}
	}
}

// WithProfile forces a colour profile instead of detecting one from the writer.
func WithProfile(p termenv.Profile) TerminalOption {
	return func(t *Terminal) {
		t.profile = &p
	}
}

// WithWait overrides whether Render blocks until Enter is pressed.
func WithWait(wait bool) TerminalOption {
	return func(t *Terminal) {
		t.wait = wait
	}
}

// NewTerminal creates a Terminal renderer writing to w. It blocks after
// drawing only when in is a terminal.
func NewTerminal(w io.Writer, in io.Reader, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		in:    in,
		width: defaultSwatchWidth,
		wait:  isTerminal(in),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.profile != nil {
		t.out = termenv.NewOutput(w, termenv.WithProfile(*t.profile))
	} else {
		t.out = termenv.NewOutput(w)
	}
	return t
}

// Render implements Renderer.
func (t *Terminal) Render(colours []string) error {
	if len(colours) == 0 {
		return ErrEmptyPalette
	}

	var line strings.Builder
	if t.out.Profile == termenv.Ascii {
		// No colour support: fall back to the codes themselves.
		line.WriteString(strings.Join(colours, " "))
	} else {
		block := strings.Repeat(" ", t.width)
		for _, hex := range colours {
			line.WriteString(t.out.String(block).Background(t.out.Color(hex)).String())
		}
	}

	if _, err := fmt.Fprintln(t.out, line.String()); err != nil {
		return fmt.Errorf("failed to draw palette: %w", err)
	}

	if !t.wait {
		return nil
	}

	if _, err := fmt.Fprint(t.out, "Press Enter to continue..."); err != nil {
		return fmt.Errorf("failed to draw prompt: %w", err)
	}
	if _, err := bufio.NewReader(t.in).ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("failed to wait for viewer: %w", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
