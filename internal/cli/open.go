package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OpenCommand handles the open command
type OpenCommand struct {
	app *app
}

// NewOpenCommand creates a new open command
func NewOpenCommand(a *app) *cobra.Command {
	cmd := &OpenCommand{app: a}

	return &cobra.Command{
		Use:   "open [name]",
		Short: "Open a project in your editor",
		Long: `Opens the project directory in the configured editor and waits for it to exit.

A missing directory is cloned from the project's source first. Without a name
a fuzzy picker lists all projects.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.completeProjectName,
		RunE:              cmd.Run,
	}
}

// Run executes the open command
func (c *OpenCommand) Run(cmd *cobra.Command, args []string) error {
	s, cleanup, err := c.app.session(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name, err := c.app.projectName(s, args)
	if err != nil {
		return err
	}

	if err := s.manager.Open(cmd.Context(), name); err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}

	return nil
}
