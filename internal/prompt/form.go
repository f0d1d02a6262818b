package prompt

import (
	"errors"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
)

// FormPrompter renders each prompt as a single-field huh form.
type FormPrompter struct {
	out   io.Writer
	theme *huh.Theme
}

var _ Confirmer = (*FormPrompter)(nil)

// NewFormPrompter creates a FormPrompter drawing on out (usually stderr,
// so stdout stays clean for `cd "$(pm pwd x)"`).
func NewFormPrompter(out io.Writer, theme *huh.Theme) *FormPrompter {
	return &FormPrompter{out: out, theme: theme}
}

func (p *FormPrompter) Prompt(message string) (string, error) {
	value := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(formTitle(message)).
				Value(&value),
		),
	)

	if err := p.run(form); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (p *FormPrompter) Confirm(question string) (bool, error) {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := p.run(form); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (p *FormPrompter) run(form *huh.Form) error {
	err := form.
		WithTheme(p.theme).
		WithShowHelp(false).
		WithProgramOptions(tea.WithOutput(p.out)).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// formTitle turns "Enter project name: " into "Enter project name".
func formTitle(message string) string {
	return strings.TrimRight(strings.TrimSpace(message), ":")
}
