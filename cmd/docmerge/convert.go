// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmerge/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Merge documents and convert them to markdown or text",
	Long: `Convert validates the given .doc/.docx files, persists copies to
object storage, submits them to the conversion backend as one batch, and
saves the merged artifact locally. Files that are not word-processing
documents are skipped. An upload failure is reported but does not block
conversion.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("format", "markdown", "output format: markdown or text")
	convertCmd.Flags().String("out", ".", "directory the artifact is saved into")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more .doc/.docx files")
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	format := types.Format(formatFlag)
	if !format.Valid() {
		return fmt.Errorf("unsupported format %q (use markdown or text)", formatFlag)
	}
	outDir, _ := cmd.Flags().GetString("out")

	cfg := clientConfig()
	user, err := currentUser(cfg)
	if err != nil {
		return err
	}

	ws, cleanup, err := newWorkspace(cfg, user)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	accepted, rejected, err := ws.AddFiles(ctx, args)
	if err != nil && len(accepted) == 0 {
		return err
	}
	for _, doc := range rejected {
		fmt.Fprintf(os.Stderr, "skipped: %s (not a .doc/.docx document)\n", doc.Name)
	}
	if len(accepted) == 0 {
		return fmt.Errorf("none of the given files are .doc/.docx documents")
	}
	if err != nil {
		// Persistence is a side effect; conversion proceeds on the
		// in-memory selection.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if _, err := ws.Convert(ctx, format, outDir); err != nil {
		return err
	}
	return nil
}
