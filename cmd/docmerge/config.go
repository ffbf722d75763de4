// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/docmerge/internal/convert"
	"github.com/pdiddy/docmerge/internal/history"
	"github.com/pdiddy/docmerge/internal/session"
	"github.com/pdiddy/docmerge/internal/storage"
	"github.com/pdiddy/docmerge/internal/workspace"
	"github.com/pdiddy/docmerge/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "docmerge/0.1"
	defaultBucket    = "docx-files"
)

// clientConfig assembles the full client configuration from the config
// file, environment, and .secrets/.
func clientConfig() types.ClientConfig {
	httpCfg := types.HTTPConfig{
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent,
	}
	if t := viper.GetDuration("http.timeout"); t > 0 {
		httpCfg.Timeout = t
	}

	bucket := viper.GetString("storage.bucket")
	if bucket == "" {
		bucket = defaultBucket
	}

	return types.ClientConfig{
		Backend: types.BackendConfig{
			HTTPConfig: httpCfg,
			BaseURL:    viper.GetString("backend.base_url"),
		},
		Storage: types.StorageConfig{
			Endpoint:  viper.GetString("storage.endpoint"),
			AccessKey: secretDefault("storage-access-key", viper.GetString("storage.access_key")),
			SecretKey: secretDefault("storage-secret-key", viper.GetString("storage.secret_key")),
			UseSSL:    viper.GetBool("storage.use_ssl"),
			Bucket:    bucket,
		},
		Auth: types.AuthConfig{
			HTTPConfig:  httpCfg,
			BaseURL:     viper.GetString("auth.base_url"),
			AnonKey:     secretDefault("auth-anon-key", viper.GetString("auth.anon_key")),
			SessionFile: viper.GetString("auth.session_file"),
		},
		History: types.HistoryConfig{
			Dir: historyDir(),
		},
	}
}

func historyDir() string {
	if dir := viper.GetString("history.dir"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "docmerge")
}

// currentUser resolves the signed-in user or fails with a hint.
func currentUser(cfg types.ClientConfig) (*types.User, error) {
	client, err := session.NewClient(cfg.Auth)
	if err != nil {
		return nil, err
	}
	s, err := client.Current()
	if err != nil {
		return nil, fmt.Errorf("not signed in (run \"docmerge login\" first): %w", err)
	}
	return &s.User, nil
}

// newWorkspace wires a workspace from configuration. Object storage is
// optional: without an endpoint, selection still works and uploads are
// skipped with a warning. A broken history store degrades to no
// recording.
func newWorkspace(cfg types.ClientConfig, user *types.User) (*workspace.Workspace, func(), error) {
	var uploader *storage.Uploader
	if cfg.Storage.Endpoint != "" {
		store, err := storage.NewMinioStore(cfg.Storage)
		if err != nil {
			return nil, nil, err
		}
		uploader = storage.NewUploader(store)
	} else {
		fmt.Fprintln(os.Stderr, "warning: object storage not configured, uploads are skipped")
	}

	cleanup := func() {}
	var recorder workspace.Recorder
	if hist, err := history.NewStore(cfg.History); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
	} else {
		recorder = hist
		cleanup = func() { hist.Close() }
	}

	ws := workspace.New(convert.NewClient(cfg.Backend), uploader, recorder, os.Stdout)
	ws.SetUser(user)
	return ws, cleanup, nil
}
