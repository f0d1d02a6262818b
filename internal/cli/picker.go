package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jakoblorz/project-manager/internal/prompt"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

var ErrNameRequired = errors.New("project name required when not attached to a terminal")

// Picker chooses one project name from a list.
type Picker interface {
	Pick(names []string) (string, error)
}

// FuzzyPicker lets the user fuzzy-search the project names in the terminal.
type FuzzyPicker struct{}

func NewFuzzyPicker() *FuzzyPicker {
	return &FuzzyPicker{}
}

func (p *FuzzyPicker) Pick(names []string) (string, error) {
	if !prompt.IsTerminal(os.Stdin) {
		return "", ErrNameRequired
	}

	idx, err := fuzzyfinder.Find(names, func(i int) string { return names[i] },
		fuzzyfinder.WithPromptString("project> "),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", prompt.ErrAborted
		}
		return "", fmt.Errorf("failed to pick project: %w", err)
	}

	return names[idx], nil
}
