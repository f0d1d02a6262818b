package cli

import (
	"fmt"

	"github.com/jakoblorz/project-manager/internal/models"
	"github.com/jakoblorz/project-manager/internal/tui"
	"github.com/spf13/cobra"
)

// AddSourceCommand handles the add-source command
type AddSourceCommand struct {
	app        *app
	sourceType string
}

// NewAddSourceCommand creates a new add-source command
func NewAddSourceCommand(a *app) *cobra.Command {
	cmd := &AddSourceCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "add-source <url>",
		Short: "Register a project by its remote source",
		Long: `Registers a project that is not on disk yet. The directory name is the
last element of the URL without ".git"; the project is cloned the first time
it is opened.`,
		Example: `  pm add-source git@github.com:jakoblorz/go-changesets.git
  pm add-source --type web https://example.com/docs`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.sourceType, "type", "t", "git", "Source type: git or web")

	return cobraCmd
}

// Run executes the add-source command
func (c *AddSourceCommand) Run(cmd *cobra.Command, args []string) error {
	sourceType, err := models.ParseSourceType(c.sourceType)
	if err != nil {
		return err
	}

	s, cleanup, err := c.app.session(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	project, err := s.manager.AddFromSource(cmd.Context(), &models.Source{Type: sourceType, URL: args[0]})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", args[0], err)
	}

	if err := s.save(); err != nil {
		return err
	}

	printStatus(cmd, tui.SuccessStyle.Render("✓ Added "+project.Name)+" "+tui.SubtleStyle.Render(project.SourceURL()))
	return nil
}
