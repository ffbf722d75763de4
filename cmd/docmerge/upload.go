// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Persist documents to object storage without converting",
	Long: `Upload validates the given .doc/.docx files and persists copies to
per-user object storage. Files are uploaded sequentially; the first
failure abandons the rest of the batch, but files persisted before it
stay persisted.`,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more .doc/.docx files")
	}

	cfg := clientConfig()
	if cfg.Storage.Endpoint == "" {
		return fmt.Errorf("object storage is not configured (set storage.endpoint)")
	}
	user, err := currentUser(cfg)
	if err != nil {
		return err
	}

	ws, cleanup, err := newWorkspace(cfg, user)
	if err != nil {
		return err
	}
	defer cleanup()

	accepted, rejected, err := ws.AddFiles(context.Background(), args)
	for _, doc := range rejected {
		fmt.Fprintf(os.Stderr, "skipped: %s (not a .doc/.docx document)\n", doc.Name)
	}
	if err != nil {
		return err
	}
	if len(accepted) == 0 {
		return fmt.Errorf("none of the given files are .doc/.docx documents")
	}
	return nil
}
