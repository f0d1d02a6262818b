package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/project-manager/internal/editor"
	"github.com/jakoblorz/project-manager/internal/filesystem"
	"github.com/jakoblorz/project-manager/internal/git"
	"github.com/jakoblorz/project-manager/internal/github"
	"github.com/jakoblorz/project-manager/internal/paths"
	"github.com/jakoblorz/project-manager/internal/prompt"
	"github.com/spf13/cobra"
)

// Dependencies are the collaborators shared by every command. Prompter and
// Picker are optional; when nil they are built from the --prompt flag and
// the terminal.
type Dependencies struct {
	FS       filesystem.FileSystem
	Git      git.GitClient
	GitHub   github.GitHubClient
	Editor   editor.Launcher
	Resolver *paths.Resolver
	Prompter prompt.Prompter
	Picker   Picker
}

// globalOptions holds the persistent flags.
type globalOptions struct {
	verbose bool
	prompt  string
	offline bool
}

// NewRootCommand creates the root command
func NewRootCommand(deps *Dependencies) *cobra.Command {
	opts := &globalOptions{}
	app := &app{deps: deps, opts: opts}

	rootCmd := &cobra.Command{
		Use:   "pm",
		Short: "Keep track of your development projects",
		Long: `pm keeps a registry of project directories below a single root folder.

Projects can be registered from an existing directory or from a remote source.
Missing directories are cloned from their source the next time they are opened.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := prompt.ParseMode(opts.prompt); err != nil {
				return err
			}
			app.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.prompt, "prompt", string(prompt.ModeAuto), "Prompt style: auto, form, readline, or plain")
	rootCmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "Skip GitHub metadata lookups")

	rootCmd.AddCommand(NewOpenCommand(app))
	rootCmd.AddCommand(NewPwdCommand(app))
	rootCmd.AddCommand(NewAddCommand(app))
	rootCmd.AddCommand(NewAddSourceCommand(app))
	rootCmd.AddCommand(NewRemoveCommand(app))
	rootCmd.AddCommand(NewListCommand(app))
	rootCmd.AddCommand(NewEditCommand(app))
	rootCmd.AddCommand(NewInspectCommand(app))

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "pm",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(&Dependencies{
		FS:       fs,
		Git:      git.NewOSGitClient(),
		GitHub:   github.NewClientFromEnv(),
		Editor:   editor.NewExecLauncher(),
		Resolver: paths.NewResolver(fs),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
