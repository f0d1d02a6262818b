package prompt

import (
	"io"
	"os"

	huh "github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// New builds the Prompter for mode. Auto picks a form when in is a terminal
// and plain line reading otherwise.
func New(mode Mode, in *os.File, out io.Writer, theme *huh.Theme) (Prompter, error) {
	if mode == ModeAuto {
		mode = ModePlain
		if IsTerminal(in) {
			mode = ModeForm
		}
	}

	switch mode {
	case ModeForm:
		return NewFormPrompter(out, theme), nil
	case ModeReadline:
		p, err := NewReadlinePrompter(out)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return NewLinePrompter(in, out), nil
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
