// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"mime"
	"path/filepath"

	"github.com/pdiddy/docmerge/pkg/types"
)

// artifactName derives the save filename for a conversion response.
// A filename parameter in a well-formed Content-Disposition header wins;
// anything else (absent header, parse failure, empty parameter) falls
// back to the format's default name. Only the base name of the hint is
// kept, so a hostile header cannot direct the write outside the output
// directory.
func artifactName(disposition string, format types.Format) string {
	fallback := format.DefaultArtifactName()
	if disposition == "" {
		return fallback
	}

	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}

	name := filepath.Base(params["filename"])
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}
