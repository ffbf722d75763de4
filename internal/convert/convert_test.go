// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docmerge/pkg/types"
)

func testDocs() []types.Document {
	return []types.Document{
		{ID: "1", Name: "a.docx", Data: []byte("first")},
		{ID: "2", Name: "b.docx", Data: []byte("second")},
	}
}

func clientFor(ts *httptest.Server) *Client {
	return NewClient(types.BackendConfig{BaseURL: ts.URL})
}

func TestMergeAndConvert_Success(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "markdown", r.FormValue("format"))
		files := r.MultipartForm.File["files[]"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.docx", files[0].Filename)
		assert.Equal(t, "b.docx", files[1].Filename)

		w.Write([]byte("X"))
	}))
	defer ts.Close()

	artifact, err := clientFor(ts).MergeAndConvert(context.Background(), testDocs(), types.FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "/api/merge-and-convert", gotPath)
	assert.Equal(t, "merged.md", artifact.Name)
	assert.Equal(t, []byte("X"), artifact.Data)
}

func TestMergeAndConvert_TextFormatDefaultName(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("X"))
	}))
	defer ts.Close()

	artifact, err := clientFor(ts).MergeAndConvert(context.Background(), testDocs(), types.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "merged.txt", artifact.Name)
}

func TestMergeAndConvert_FilenameHintWins(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="report.md"`)
		w.Write([]byte("converted"))
	}))
	defer ts.Close()

	artifact, err := clientFor(ts).MergeAndConvert(context.Background(), testDocs(), types.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "report.md", artifact.Name)
}

func TestMergeAndConvert_ErrorPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad file"}`))
	}))
	defer ts.Close()

	_, err := clientFor(ts).MergeAndConvert(context.Background(), testDocs(), types.FormatMarkdown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad file")
}

func TestMergeAndConvert_MalformedErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	_, err := clientFor(ts).MergeAndConvert(context.Background(), testDocs(), types.FormatMarkdown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestMergeAndConvert_EmptyDocs(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer ts.Close()

	_, err := clientFor(ts).MergeAndConvert(context.Background(), nil, types.FormatMarkdown)
	assert.ErrorIs(t, err, ErrNoDocuments)
	assert.False(t, called, "empty selection must not issue a request")
}

func TestMergeAndConvert_InvalidFormat(t *testing.T) {
	_, err := NewClient(types.BackendConfig{}).MergeAndConvert(context.Background(), testDocs(), types.Format("pdf"))
	assert.Error(t, err)
}

func TestMergeAndConvert_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	_, err := clientFor(ts).MergeAndConvert(context.Background(), testDocs(), types.FormatMarkdown)
	assert.Error(t, err)
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		format      types.Format
		want        string
	}{
		{"absent header markdown", "", types.FormatMarkdown, "merged.md"},
		{"absent header text", "", types.FormatText, "merged.txt"},
		{"quoted filename", `attachment; filename="report.md"`, types.FormatMarkdown, "report.md"},
		{"bare filename", `attachment; filename=report.txt`, types.FormatText, "report.txt"},
		{"no filename param", "attachment", types.FormatMarkdown, "merged.md"},
		{"malformed header", `attachment; filename="a" b="`, types.FormatMarkdown, "merged.md"},
		{"path traversal stripped", `attachment; filename="../../etc/passwd"`, types.FormatMarkdown, "passwd"},
		{"empty filename param", `attachment; filename=""`, types.FormatText, "merged.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactName(tt.disposition, tt.format); got != tt.want {
				t.Errorf("artifactName(%q, %q) = %q, want %q", tt.disposition, tt.format, got, tt.want)
			}
		})
	}
}

func TestSaveArtifact(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveArtifact(&Artifact{Name: "merged.md", Data: []byte("X")}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "merged.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("X"), data)

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveArtifact_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	path, err := SaveArtifact(&Artifact{Name: "merged.txt", Data: []byte("y")}, dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
