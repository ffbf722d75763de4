// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmerge/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion attempts",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(clientConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	for _, e := range entries {
		when := e.CreatedAt.Local().Format(time.DateTime)
		if e.Outcome == history.OutcomeOK {
			fmt.Printf("%s  %-8s  %d file(s)  %s\n", when, e.Format, e.FileCount, e.Artifact)
		} else {
			fmt.Printf("%s  %-8s  %d file(s)  failed: %s\n", when, e.Format, e.FileCount, e.Error)
		}
	}
	return nil
}
