package cli

import (
	"fmt"

	"github.com/jakoblorz/project-manager/internal/tui"
	"github.com/spf13/cobra"
)

// RemoveCommand handles the remove command
type RemoveCommand struct {
	app *app
}

// NewRemoveCommand creates a new remove command
func NewRemoveCommand(a *app) *cobra.Command {
	cmd := &RemoveCommand{app: a}

	return &cobra.Command{
		Use:               "remove <name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a project directory and optionally its registry entry",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeProjectName,
		RunE:              cmd.Run,
	}
}

// Run executes the remove command
func (c *RemoveCommand) Run(cmd *cobra.Command, args []string) error {
	s, cleanup, err := c.app.session(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name := args[0]
	result, err := s.manager.Remove(name)
	if result != nil && result.Unregistered {
		// the entry is gone even if deleting the directory failed
		if saveErr := s.save(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}

	if result.Aborted {
		printStatus(cmd, tui.WarningStyle.Render("Aborted, nothing was removed"))
		return nil
	}

	if result.DirectoryDeleted {
		printStatus(cmd, tui.SuccessStyle.Render("✓ Deleted ")+tui.PathStyle.Render(result.Directory))
	}
	if result.Unregistered {
		printStatus(cmd, tui.SuccessStyle.Render("✓ Removed "+name+" from the project list"))
	}

	return nil
}
