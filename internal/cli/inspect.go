package cli

import (
	"fmt"

	"github.com/jakoblorz/project-manager/internal/registry"
	"github.com/jakoblorz/project-manager/internal/tui"
	"github.com/spf13/cobra"
)

// InspectCommand handles the inspect command
type InspectCommand struct {
	app *app
}

// NewInspectCommand creates a new inspect command
func NewInspectCommand(a *app) *cobra.Command {
	cmd := &InspectCommand{app: a}

	return &cobra.Command{
		Use:   "inspect",
		Short: "List folders in the root directory that are not registered",
		Long: `Lists the root directory's immediate subfolders that no project points at.

Hidden folders are skipped, as are folders matching a pattern in
<root>/` + registry.IgnoreFileName + ` (gitignore syntax).`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}
}

// Run executes the inspect command
func (c *InspectCommand) Run(cmd *cobra.Command, args []string) error {
	s, cleanup, err := c.app.session(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	unregistered, err := s.manager.Inspect()
	if err != nil {
		return fmt.Errorf("failed to inspect root directory: %w", err)
	}

	if len(unregistered) == 0 {
		printStatus(cmd, tui.SuccessStyle.Render("✓ Every folder is registered"))
		return nil
	}

	for _, name := range unregistered {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
