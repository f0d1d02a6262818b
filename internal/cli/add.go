package cli

import (
	"fmt"

	"github.com/jakoblorz/project-manager/internal/paths"
	"github.com/jakoblorz/project-manager/internal/tui"
	"github.com/spf13/cobra"
)

// AddCommand handles the add command
type AddCommand struct {
	app *app
}

// NewAddCommand creates a new add command
func NewAddCommand(a *app) *cobra.Command {
	cmd := &AddCommand{app: a}

	return &cobra.Command{
		Use:   "add <dir>",
		Short: "Register an existing project directory",
		Long: `Registers a directory below the root folder. You are asked for a name
(empty takes the suggested one) and a description. The git origin remote, if
any, becomes the project's source.`,
		Example: `  pm add .
  pm add ~/my_projects/api`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}
}

// Run executes the add command
func (c *AddCommand) Run(cmd *cobra.Command, args []string) error {
	dir, err := paths.Expand(args[0])
	if err != nil {
		return err
	}

	s, cleanup, err := c.app.session(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	project, err := s.manager.AddFromDirectory(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", dir, err)
	}

	if err := s.save(); err != nil {
		return err
	}

	printStatus(cmd, tui.SuccessStyle.Render("✓ Added "+project.Name)+" "+tui.SubtleStyle.Render(project.Path))
	return nil
}
