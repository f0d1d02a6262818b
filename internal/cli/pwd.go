package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// PwdCommand handles the pwd command
type PwdCommand struct {
	app *app
}

// NewPwdCommand creates a new pwd command
func NewPwdCommand(a *app) *cobra.Command {
	cmd := &PwdCommand{app: a}

	return &cobra.Command{
		Use:   "pwd [name]",
		Short: "Print a project's directory",
		Long: `Prints the absolute project directory on stdout, cloning it from the
project's source first when it is missing. Everything else goes to stderr,
so the output can be used directly:

  cd "$(pm pwd api)"`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.completeProjectName,
		RunE:              cmd.Run,
	}
}

// Run executes the pwd command
func (c *PwdCommand) Run(cmd *cobra.Command, args []string) error {
	s, cleanup, err := c.app.session(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name, err := c.app.projectName(s, args)
	if err != nil {
		return err
	}

	dir, err := s.manager.Navigate(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to locate %s: %w", name, err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}
