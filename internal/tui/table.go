package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jakoblorz/project-manager/internal/models"
)

// RenderListing renders a listing as a borderless table. A listing without
// header renders as one name per line.
func RenderListing(listing *models.Listing) string {
	if len(listing.Rows) == 0 {
		return ""
	}

	if len(listing.Header) == 0 {
		names := make([]string, 0, len(listing.Rows))
		for _, row := range listing.Rows {
			names = append(names, NameStyle.Render(row[0]))
		}
		return strings.Join(names, "\n")
	}

	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		Headers(listing.Header...).
		Rows(listing.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingRight(2)
			switch {
			case row == table.HeaderRow:
				return HeaderStyle.PaddingRight(2)
			case col == 0:
				return NameStyle.PaddingRight(2)
			default:
				return style
			}
		})

	return trimTrailingSpaces(t.String())
}

// trimTrailingSpaces drops cell padding at line ends.
func trimTrailingSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
