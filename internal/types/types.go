// Package types defines every cross‑package data structure used by the dirtree CLI.
package types

import "encoding/xml"

// EntryKind classifies a visited filesystem entry.
type EntryKind string

const (
	EntryKindDirectory EntryKind = "directory"
	EntryKindLeaf      EntryKind = "leaf"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// TreeRecord is one visited, non-ignored entry in traversal order.
type TreeRecord struct {
	Depth int       `json:"depth" xml:"depth,attr"`
	Kind  EntryKind `json:"kind" xml:"kind,attr"`
	Name  string    `json:"name" xml:"name,attr"`
	Path  string    `json:"path" xml:"path,attr"`
}

// IsDirectory reports whether the record describes a directory.
func (record TreeRecord) IsDirectory() bool {
	return record.Kind == EntryKindDirectory
}

// TreeDocument is the structured rendering of one traversal.
type TreeDocument struct {
	XMLName  xml.Name     `json:"-" xml:"tree"`
	Root     string       `json:"root" xml:"root,attr"`
	MaxDepth int          `json:"maxDepth" xml:"maxDepth,attr"`
	Ignored  []string     `json:"ignorePatterns,omitempty" xml:"ignorePatterns>pattern,omitempty"`
	Entries  []TreeRecord `json:"entries" xml:"entry"`
}
