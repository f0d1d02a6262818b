package tui

import (
	"strings"
	"testing"

	"github.com/jakoblorz/project-manager/internal/models"
	"github.com/stretchr/testify/require"
)

func TestRenderListing_Empty(t *testing.T) {
	require.Equal(t, "", RenderListing(&models.Listing{}))
}

func TestRenderListing_NamesOnly(t *testing.T) {
	out := RenderListing(&models.Listing{
		Rows: [][]string{{"alpha"}, {"beta"}},
	})
	require.Equal(t, []string{"alpha", "beta"}, strings.Split(out, "\n"))
}

func TestRenderListing_WithColumns(t *testing.T) {
	out := RenderListing(&models.Listing{
		Header: []string{"Name", "Path"},
		Rows: [][]string{
			{"sample", "sample"},
			{"tools", "go/tools"},
		},
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"Name", "Path"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"sample", "sample"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"tools", "go/tools"}, strings.Fields(lines[2]))

	// columns line up
	require.Equal(t, strings.Index(lines[0], "Path"), strings.Index(lines[2], "go/tools"))
}
