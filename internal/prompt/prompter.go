package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAborted is returned when the user cancels a prompt (ctrl+c, esc).
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for a single line of input.
type Prompter interface {
	Prompt(message string) (string, error)
}

// Confirmer is implemented by prompters with a native yes/no widget.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Confirm asks a yes/no question. Prompters without a native widget get a
// "(y/N)" line where only y or yes (any case) means yes.
func Confirm(p Prompter, question string) (bool, error) {
	if c, ok := p.(Confirmer); ok {
		return c.Confirm(question)
	}

	answer, err := p.Prompt(fmt.Sprintf("%s (y/N): ", question))
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// IsYes reports whether a line answers a yes/no question with yes
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Mode selects a Prompter implementation.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeForm     Mode = "form"
	ModeReadline Mode = "readline"
	ModePlain    Mode = "plain"
)

// ParseMode parses a string into a Mode
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(s))
	switch m {
	case ModeAuto, ModeForm, ModeReadline, ModePlain:
		return m, nil
	default:
		return "", fmt.Errorf("invalid prompt mode: %s (must be auto, form, readline, or plain)", s)
	}
}
