// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for docmerge: documents,
// output formats, sessions, and per-concern configuration.
package types

// Format selects the conversion output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Valid reports whether f is a recognized output format.
func (f Format) Valid() bool {
	return f == FormatMarkdown || f == FormatText
}

// DefaultArtifactName returns the artifact filename used when the
// conversion backend does not suggest one.
func (f Format) DefaultArtifactName() string {
	if f == FormatMarkdown {
		return "merged.md"
	}
	return "merged.txt"
}

// Document is a word-processing file accepted for conversion.
// It is immutable once accepted; ID is assigned at intake time and is
// the stable handle for removal from the selection store.
type Document struct {
	// ID is a generated identifier, unique within the session.
	ID string `json:"id" yaml:"id"`

	// Name is the original filename, including extension.
	Name string `json:"name" yaml:"name"`

	// Size is the content length in bytes.
	Size int64 `json:"size" yaml:"size"`

	// MIMEType is the declared media type. It may be empty or
	// unreliable; validation also checks the filename extension.
	MIMEType string `json:"mime_type" yaml:"mime_type"`

	// Data is the file content.
	Data []byte `json:"-" yaml:"-"`
}
