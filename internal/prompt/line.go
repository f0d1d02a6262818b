package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type flusher interface {
	Flush() error
}

// LinePrompter writes the message, then reads one line with trailing
// whitespace removed. It is used when input is piped rather than typed.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a new LinePrompter
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Prompt(message string) (string, error) {
	if _, err := io.WriteString(p.out, message); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	if f, ok := p.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return "", fmt.Errorf("failed to flush prompt: %w", err)
		}
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		// a final unterminated line still counts
		if errors.Is(err, io.EOF) && line != "" {
			return trimLine(line), nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return trimLine(line), nil
}

// trimLine drops the line ending and trailing blanks; leading blanks are kept.
func trimLine(line string) string {
	return strings.TrimRight(line, " \t\r\n")
}
