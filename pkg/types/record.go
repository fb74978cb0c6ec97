// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the anthology-export pipeline.
package types

// Columns is the fixed column order of every tabular output, header row included.
var Columns = []string{"Title", "Author", "Abstract", "Url"}

// Record is one paper's normalized metadata. Every field is always set;
// missing source data yields an empty string.
type Record struct {
	// Title is the paper title with inline markup stripped.
	Title string `json:"title" yaml:"title"`

	// Author is the author display names joined with ", ".
	Author string `json:"author" yaml:"author"`

	// Abstract is the paper abstract with inline markup stripped.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Url is the anthology homepage link, or empty when the paper has none.
	Url string `json:"url" yaml:"url"`
}

// Row returns the record's fields in Columns order.
func (r Record) Row() []string {
	return []string{r.Title, r.Author, r.Abstract, r.Url}
}

// RecordFromRow builds a Record from fields in Columns order. Missing
// trailing fields are left empty.
func RecordFromRow(row []string) Record {
	field := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Record{
		Title:    field(0),
		Author:   field(1),
		Abstract: field(2),
		Url:      field(3),
	}
}
