// Package editor starts the user's editor on a project directory.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

var ErrNoEditor = errors.New("no editor configured")

// Launcher runs an editor on a directory and waits for it to exit.
// A non-zero exit is reported through the exit code, not the error.
type Launcher interface {
	Launch(ctx context.Context, editor, dir string) (exitCode int, err error)
}

// ExecLauncher spawns the editor as a child process sharing the terminal.
type ExecLauncher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Launch runs `editor dir`. The editor string may carry arguments,
// e.g. "code --wait". The editor is not bound to ctx; Launch waits for it
// to exit even after pm is interrupted.
func (l *ExecLauncher) Launch(_ context.Context, editor, dir string) (int, error) {
	args := strings.Fields(editor)
	if len(args) == 0 {
		return 0, ErrNoEditor
	}

	cmd := exec.Command(args[0], append(args[1:], dir)...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("failed to start editor %s: %w", args[0], err)
	}

	return 0, nil
}
