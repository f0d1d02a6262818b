package models

import (
	"fmt"
	"strings"
)

// Column is an optional column of the project listing. Name is implied.
type Column string

const (
	ColumnPath        Column = "path"
	ColumnDescription Column = "description"
	ColumnLanguages   Column = "languages"
	ColumnSource      Column = "source"
)

// AllColumns lists the optional columns in display order.
var AllColumns = []Column{ColumnPath, ColumnDescription, ColumnLanguages, ColumnSource}

// IsValid checks if the column is known
func (c Column) IsValid() bool {
	switch c {
	case ColumnPath, ColumnDescription, ColumnLanguages, ColumnSource:
		return true
	default:
		return false
	}
}

// Header returns the table header for the column
func (c Column) Header() string {
	switch c {
	case ColumnPath:
		return "Path"
	case ColumnDescription:
		return "Description"
	case ColumnLanguages:
		return "Languages"
	case ColumnSource:
		return "Source"
	default:
		return string(c)
	}
}

// Value projects a project onto the column
func (c Column) Value(p *Project) string {
	switch c {
	case ColumnPath:
		return p.Path
	case ColumnDescription:
		return p.DescriptionOrEmpty()
	case ColumnLanguages:
		return strings.Join(p.Languages, ", ")
	case ColumnSource:
		return p.SourceURL()
	default:
		return ""
	}
}

// ParseColumn parses a string into a Column
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(s))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid column: %s (must be path, description, languages, or source)", s)
	}
	return c, nil
}

// ListFilter selects which optional columns a listing shows.
type ListFilter struct {
	Path        bool
	Description bool
	Languages   bool
	Source      bool
}

// Include selects a column
func (f *ListFilter) Include(c Column) {
	switch c {
	case ColumnPath:
		f.Path = true
	case ColumnDescription:
		f.Description = true
	case ColumnLanguages:
		f.Languages = true
	case ColumnSource:
		f.Source = true
	}
}

// Columns returns the selected columns in display order
func (f ListFilter) Columns() []Column {
	var cols []Column
	if f.Path {
		cols = append(cols, ColumnPath)
	}
	if f.Description {
		cols = append(cols, ColumnDescription)
	}
	if f.Languages {
		cols = append(cols, ColumnLanguages)
	}
	if f.Source {
		cols = append(cols, ColumnSource)
	}
	return cols
}

// Listing is the projection produced by a list operation. Header is empty
// when no optional column was requested.
type Listing struct {
	Header []string
	Rows   [][]string
}
