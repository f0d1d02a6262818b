package prompt

import (
	"errors"
	"sync"
)

// ErrScriptExhausted is returned by Scripted once every answer was used.
var ErrScriptExhausted = errors.New("no scripted answer left")

// Scripted replays canned answers in order and records every message it
// was asked. Confirmations go through the "(y/N)" line path.
type Scripted struct {
	mu      sync.Mutex
	answers []string
	prompts []string
}

// NewScripted creates a Scripted prompter
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

func (s *Scripted) Prompt(message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, message)
	if len(s.answers) == 0 {
		return "", ErrScriptExhausted
	}

	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Prompts returns the messages asked so far
func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.prompts...)
}

// Remaining returns the number of unused answers
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.answers)
}
