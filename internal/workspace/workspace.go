// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace coordinates the client-side conversion flow: it
// owns the selection store, runs uploads and conversions one at a time
// behind an explicit busy guard, and keeps the single user-facing error
// slot. Upload persists copies as a side effect of selection; it is
// never a prerequisite for conversion.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdiddy/docmerge/internal/convert"
	"github.com/pdiddy/docmerge/internal/history"
	"github.com/pdiddy/docmerge/internal/intake"
	"github.com/pdiddy/docmerge/internal/selection"
	"github.com/pdiddy/docmerge/internal/storage"
	"github.com/pdiddy/docmerge/pkg/types"
)

// State is the workspace's operation state. Exactly one operation may
// be in flight; the guard lives here, not at the trigger surface, so
// rapid or programmatic invocation cannot overlap requests.
type State string

const (
	StateIdle       State = "idle"
	StateUploading  State = "uploading"
	StateConverting State = "converting"
)

var (
	// ErrBusy is returned when an operation starts while another is in flight.
	ErrBusy = errors.New("another operation is in flight")

	// ErrNoSession is returned when an operation requires an authenticated user.
	ErrNoSession = errors.New("not signed in")
)

// Recorder logs operations to the local history. A nil Recorder
// disables recording; recording failures never fail an operation.
type Recorder interface {
	RecordUpload(ctx context.Context, userID, objectKey, name string, size int64) error
	RecordConversion(ctx context.Context, format types.Format, fileCount int, artifact string, outcome history.Outcome, errMsg string) error
}

// Workspace holds the per-session client state.
type Workspace struct {
	mu      sync.Mutex
	state   State
	lastErr string
	user    *types.User

	store     *selection.Store
	uploader  *storage.Uploader
	converter *convert.Client
	recorder  Recorder
	out       io.Writer
}

// New returns an idle workspace. uploader may be nil, which disables
// remote persistence; recorder may be nil; out defaults to io.Discard.
func New(converter *convert.Client, uploader *storage.Uploader, recorder Recorder, out io.Writer) *Workspace {
	if out == nil {
		out = io.Discard
	}
	return &Workspace{
		state:     StateIdle,
		store:     selection.NewStore(),
		uploader:  uploader,
		converter: converter,
		recorder:  recorder,
		out:       out,
	}
}

// SetUser installs or clears the current user. Clearing the user also
// clears the selection, which is only meaningful within a session.
func (w *Workspace) SetUser(user *types.User) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.user = user
	if user == nil {
		w.store.Clear()
	}
}

// User returns the current user, or nil when unauthenticated.
func (w *Workspace) User() *types.User {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.user
}

// State returns the current operation state.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastError returns the message of the most recent failed operation,
// or "" when the last operation succeeded. Starting a new operation
// clears it (last write wins, one slot).
func (w *Workspace) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Documents returns a snapshot of the current selection.
func (w *Workspace) Documents() []types.Document {
	return w.store.Documents()
}

// Remove removes a selected document by ID; unknown IDs are a no-op.
// Selection is only mutable while a user is present.
func (w *Workspace) Remove(id string) bool {
	if w.User() == nil {
		return false
	}
	return w.store.Remove(id)
}

// RemoveAt removes a selected document by position; out-of-range
// indices are a no-op.
func (w *Workspace) RemoveAt(index int) bool {
	if w.User() == nil {
		return false
	}
	return w.store.RemoveAt(index)
}

// AddFiles loads candidate files, keeps the ones that pass validation,
// appends them to the selection, and persists copies to the object
// store. Rejected files are returned, not errors. An upload failure
// aborts the remaining batch and is surfaced, but the accepted files
// stay selected: conversion does not depend on persistence.
func (w *Workspace) AddFiles(ctx context.Context, paths []string) (accepted, rejected []types.Document, err error) {
	user := w.User()
	if user == nil {
		return nil, nil, ErrNoSession
	}

	docs, err := intake.Load(paths)
	if err != nil {
		return nil, nil, err
	}
	accepted, rejected = intake.Filter(docs)
	if len(accepted) == 0 {
		return nil, rejected, nil
	}

	if err := w.begin(StateUploading); err != nil {
		return nil, rejected, err
	}
	w.store.Append(accepted...)

	if w.uploader == nil {
		return accepted, rejected, w.finish(nil)
	}
	keys, upErr := w.uploader.UploadBatch(ctx, *user, accepted, w.out)
	for i, key := range keys {
		w.recordUpload(ctx, user.ID, key, accepted[i])
	}
	if upErr != nil {
		return accepted, rejected, w.finish(fmt.Errorf("uploading files: %w", upErr))
	}
	return accepted, rejected, w.finish(nil)
}

// Convert submits the current selection for conversion and saves the
// artifact under outDir. An empty selection is a no-op: no request, no
// state change, no error. The selection is snapshotted at invocation;
// later mutations do not affect an in-flight conversion.
func (w *Workspace) Convert(ctx context.Context, format types.Format, outDir string) (string, error) {
	if w.User() == nil {
		return "", ErrNoSession
	}
	if w.store.Len() == 0 {
		return "", nil
	}

	if err := w.begin(StateConverting); err != nil {
		return "", err
	}
	docs := w.store.Documents()

	artifact, err := w.converter.MergeAndConvert(ctx, docs, format)
	if err != nil {
		w.recordConversion(ctx, format, len(docs), "", history.OutcomeFailed, err.Error())
		return "", w.finish(fmt.Errorf("converting files: %w", err))
	}

	path, err := convert.SaveArtifact(artifact, outDir)
	if err != nil {
		w.recordConversion(ctx, format, len(docs), "", history.OutcomeFailed, err.Error())
		return "", w.finish(fmt.Errorf("converting files: %w", err))
	}

	w.recordConversion(ctx, format, len(docs), path, history.OutcomeOK, "")
	fmt.Fprintf(w.out, "saved: %s\n", path)
	return path, w.finish(nil)
}

// begin moves idle → next and clears the error slot. Any other current
// state refuses with ErrBusy.
func (w *Workspace) begin(next State) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateIdle {
		return ErrBusy
	}
	w.state = next
	w.lastErr = ""
	return nil
}

// finish returns to idle on every exit path and records the outcome in
// the error slot. It returns err unchanged for convenient tail calls.
func (w *Workspace) finish(err error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateIdle
	if err != nil {
		w.lastErr = err.Error()
	}
	return err
}

func (w *Workspace) recordUpload(ctx context.Context, userID, key string, doc types.Document) {
	if w.recorder == nil {
		return
	}
	if err := w.recorder.RecordUpload(ctx, userID, key, doc.Name, doc.Size); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording upload: %v\n", err)
	}
}

func (w *Workspace) recordConversion(ctx context.Context, format types.Format, n int, artifact string, outcome history.Outcome, errMsg string) {
	if w.recorder == nil {
		return
	}
	if err := w.recorder.RecordConversion(ctx, format, n, artifact, outcome, errMsg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording conversion: %v\n", err)
	}
}
