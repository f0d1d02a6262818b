package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/project-manager/internal/github"
	"github.com/jakoblorz/project-manager/internal/prompt"
	"github.com/jakoblorz/project-manager/internal/registry"
	"github.com/jakoblorz/project-manager/internal/source"
	"github.com/jakoblorz/project-manager/internal/tui"
	"github.com/spf13/cobra"
)

// app wires Dependencies and global flags into per-invocation sessions.
type app struct {
	deps   *Dependencies
	opts   *globalOptions
	logger *log.Logger
}

// session is the loaded registry plus the manager operating on it.
type session struct {
	store    *registry.Store
	manager  *registry.Manager
	prompter prompt.Prompter
	logger   *log.Logger
}

func (a *app) log() *log.Logger {
	if a.logger == nil {
		a.logger = newLogger(os.Stderr, a.opts.verbose)
	}
	return a.logger
}

// session loads the registry. The returned cleanup must be called once the
// command is done prompting.
func (a *app) session(cmd *cobra.Command) (*session, func(), error) {
	logger := a.log()

	prompter, cleanup, err := a.prompter(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	store := registry.NewStore(a.deps.FS, a.deps.Resolver, logger)
	cfg := store.Load()

	fetcher := source.NewDefaultDispatcher(source.NewGitFetcher(a.deps.FS, a.deps.Git, logger))

	options := []registry.Option{
		registry.WithGitClient(a.deps.Git),
		registry.WithEditor(a.deps.Editor),
	}
	if !a.opts.offline && a.deps.GitHub != nil {
		options = append(options, registry.WithMetadata(github.NewMetadataFetcher(a.deps.GitHub)))
	}

	manager := registry.NewManager(cfg, a.deps.FS, a.deps.Resolver, fetcher, prompter, logger, options...)

	return &session{
		store:    store,
		manager:  manager,
		prompter: prompter,
		logger:   logger,
	}, cleanup, nil
}

func (a *app) prompter(out io.Writer) (prompt.Prompter, func(), error) {
	if a.deps.Prompter != nil {
		return a.deps.Prompter, func() {}, nil
	}

	mode, err := prompt.ParseMode(a.opts.prompt)
	if err != nil {
		return nil, nil, err
	}

	p, err := prompt.New(mode, os.Stdin, out, tui.NewHuhTheme())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up prompt: %w", err)
	}

	cleanup := func() {}
	if closer, ok := p.(io.Closer); ok {
		cleanup = func() { _ = closer.Close() }
	}
	return p, cleanup, nil
}

func (a *app) picker() Picker {
	if a.deps.Picker != nil {
		return a.deps.Picker
	}
	return NewFuzzyPicker()
}

// projectName returns the single positional name or asks the picker.
func (a *app) projectName(s *session, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	names := make([]string, 0, len(s.manager.Config().Projects))
	for _, p := range s.manager.Sorted() {
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return "", errors.New("no projects registered yet, add one with `pm add` or `pm add-source`")
	}

	return a.picker().Pick(names)
}

// completeProjectName offers registered names for the first positional
// argument. It only reads the registry and never prompts.
func (a *app) completeProjectName(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg := registry.NewStore(a.deps.FS, a.deps.Resolver, log.New(io.Discard)).Load()

	var names []string
	for _, name := range cfg.ProjectNames() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// save persists the session's registry after a mutating command.
func (s *session) save() error {
	if err := s.store.Save(s.manager.Config()); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}
	return nil
}

func printStatus(cmd *cobra.Command, line string) {
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), line)
}
