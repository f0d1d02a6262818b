package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/project-manager/internal/models"
	"github.com/jakoblorz/project-manager/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// ListCommand handles the list command
type ListCommand struct {
	app      *app
	filter   models.ListFilter
	columns  []string
	output   string
	template string
}

// NewListCommand creates a new list command
func NewListCommand(a *app) *cobra.Command {
	cmd := &ListCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered projects",
		Long: `Lists projects sorted by name. Without column flags only names are printed.

--columns takes a comma separated list of path, description, languages and
source, or "all".

--output json and --output yaml print the full project records. --template
renders a Go template (with sprig functions) once per project.`,
		Example: `  pm list --path --languages
  pm list --columns all
  pm list --output json
  pm list --template '{{ .Name | upper }} {{ .Languages | join "/" }}'`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVarP(&cmd.filter.Path, "path", "p", false, "Show the path column")
	cobraCmd.Flags().BoolVarP(&cmd.filter.Description, "description", "d", false, "Show the description column")
	cobraCmd.Flags().BoolVarP(&cmd.filter.Languages, "languages", "l", false, "Show the languages column")
	cobraCmd.Flags().BoolVarP(&cmd.filter.Source, "source", "s", false, "Show the source column")
	cobraCmd.Flags().StringSliceVar(&cmd.columns, "columns", nil, "Columns to show: path, description, languages, source, or all")
	cobraCmd.Flags().StringVarP(&cmd.output, "output", "o", outputTable, "Output format: table, json, or yaml")
	cobraCmd.Flags().StringVar(&cmd.template, "template", "", "Go template rendered for each project")

	return cobraCmd
}

// Run executes the list command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	s, cleanup, err := c.app.session(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.includeColumns(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if c.template != "" {
		return renderTemplate(out, c.template, s.manager.Sorted())
	}

	switch strings.ToLower(c.output) {
	case outputTable:
		if rendered := tui.RenderListing(s.manager.List(c.filter)); rendered != "" {
			_, _ = fmt.Fprintln(out, rendered)
		}
		return nil
	case outputJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.manager.Sorted()); err != nil {
			return fmt.Errorf("failed to encode projects: %w", err)
		}
		return nil
	case outputYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(s.manager.Sorted()); err != nil {
			return fmt.Errorf("failed to encode projects: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("invalid output format: %s (must be table, json, or yaml)", c.output)
	}
}

// includeColumns merges --columns into the column flags.
func (c *ListCommand) includeColumns() error {
	for _, name := range c.columns {
		if strings.EqualFold(name, "all") {
			for _, col := range models.AllColumns {
				c.filter.Include(col)
			}
			continue
		}

		col, err := models.ParseColumn(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		c.filter.Include(col)
	}
	return nil
}

func renderTemplate(w io.Writer, text string, projects []*models.Project) error {
	tmpl, err := template.New("project").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	for _, p := range projects {
		var b strings.Builder
		if err := tmpl.Execute(&b, p); err != nil {
			return fmt.Errorf("failed to render %s: %w", p.Name, err)
		}
		_, _ = fmt.Fprintln(w, b.String())
	}

	return nil
}
