package cli

import (
	"github.com/spf13/cobra"
)

// EditCommand handles the edit command
type EditCommand struct {
	app *app
}

// NewEditCommand creates a new edit command
func NewEditCommand(a *app) *cobra.Command {
	cmd := &EditCommand{app: a}

	return &cobra.Command{
		Use:   "edit",
		Short: "Open the registry file in your editor",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the edit command
func (c *EditCommand) Run(cmd *cobra.Command, args []string) error {
	s, cleanup, err := c.app.session(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	path, err := c.app.deps.Resolver.ConfigFile()
	if err != nil {
		return err
	}

	return s.manager.Edit(cmd.Context(), path)
}
