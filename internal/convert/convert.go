// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert submits selected documents to the merge-and-convert
// backend and saves the returned artifact. The request is the sole
// network call of a conversion: one multipart POST, attempted once,
// with no retry and no client-side abort.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pdiddy/docmerge/internal/httputil"
	"github.com/pdiddy/docmerge/pkg/types"
)

const (
	// DefaultBackendURL is the fallback when no backend is configured.
	DefaultBackendURL = "http://localhost:5000"

	mergePath = "/api/merge-and-convert"

	// filesField is the repeated multipart field carrying one document each.
	filesField = "files[]"
	// formatField is the scalar multipart field selecting the output format.
	formatField = "format"
)

// ErrNoDocuments is returned when a conversion is requested with an
// empty document set. Callers treat it as a precondition, not a
// backend failure; no request is issued.
var ErrNoDocuments = errors.New("no documents to convert")

// Artifact is the binary result of a conversion, with the filename it
// should be saved under.
type Artifact struct {
	Name string
	Data []byte
}

// Client talks to the conversion backend.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient returns a backend client. An empty BaseURL falls back to
// DefaultBackendURL.
func NewClient(cfg types.BackendConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBackendURL
	}
	return &Client{
		baseURL:   base,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// MergeAndConvert sends docs and the requested format to the backend in
// a single multipart POST and returns the resulting artifact. Documents
// are serialized in slice order with their original filenames. A non-2xx
// response is decoded as an error payload with best-effort message
// extraction; the artifact name prefers the backend's filename hint over
// the format default.
func (c *Client) MergeAndConvert(ctx context.Context, docs []types.Document, format types.Format) (*Artifact, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	body, contentType, err := buildPayload(docs, format)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+mergePath, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("conversion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("conversion backend: %s", httputil.ErrorMessage(resp))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	return &Artifact{
		Name: artifactName(resp.Header.Get("Content-Disposition"), format),
		Data: data,
	}, nil
}

// buildPayload serializes docs plus the format field into one multipart
// body, preserving each document's original filename and content.
func buildPayload(docs []types.Document, format types.Format) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, doc := range docs {
		part, err := mw.CreateFormFile(filesField, doc.Name)
		if err != nil {
			return nil, "", fmt.Errorf("adding %s to payload: %w", doc.Name, err)
		}
		if _, err := part.Write(doc.Data); err != nil {
			return nil, "", fmt.Errorf("writing %s to payload: %w", doc.Name, err)
		}
	}
	if err := mw.WriteField(formatField, string(format)); err != nil {
		return nil, "", fmt.Errorf("writing format field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing payload: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}
