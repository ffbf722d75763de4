// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intake validates candidate files and turns them into accepted
// documents. Files that are not word-processing documents are dropped
// silently; the rejected set is returned so callers can observe the filter.
package intake

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/docmerge/pkg/types"
)

const (
	mimeDoc  = "application/msword"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// acceptedMIMETypes lists the recognized word-processing media types.
var acceptedMIMETypes = map[string]bool{
	mimeDoc:  true,
	mimeDocx: true,
}

// Accepted reports whether doc passes validation: its MIME type is a
// recognized word-processing type, or its filename ends in .doc/.docx
// (case-insensitive). Declared MIME types are unreliable, so either
// check alone is sufficient.
func Accepted(doc types.Document) bool {
	if doc.MIMEType != "" {
		if mediaType, _, err := mime.ParseMediaType(doc.MIMEType); err == nil {
			if acceptedMIMETypes[mediaType] {
				return true
			}
		}
	}
	name := strings.ToLower(doc.Name)
	return strings.HasSuffix(name, ".docx") || strings.HasSuffix(name, ".doc")
}

// Filter splits candidates into accepted and rejected documents,
// preserving candidate order in both. Rejection is a policy decision,
// not an error; callers append the accepted set to the selection store
// and may report the rejected set.
func Filter(candidates []types.Document) (accepted, rejected []types.Document) {
	for _, doc := range candidates {
		if Accepted(doc) {
			accepted = append(accepted, doc)
		} else {
			rejected = append(rejected, doc)
		}
	}
	return accepted, rejected
}

// Load reads candidate files from disk into documents, assigning each a
// generated ID. The MIME type is derived from the filename extension;
// Load does not validate, so the result feeds Filter.
func Load(paths []string) ([]types.Document, error) {
	docs := make([]types.Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		name := filepath.Base(path)
		docs = append(docs, types.Document{
			ID:       uuid.New().String(),
			Name:     name,
			Size:     int64(len(data)),
			MIMEType: mime.TypeByExtension(filepath.Ext(name)),
			Data:     data,
		})
	}
	return docs, nil
}
