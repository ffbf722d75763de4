// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmerge/internal/session"
	"github.com/pdiddy/docmerge/pkg/types"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := session.NewClient(clientConfig().Auth)
		if err != nil {
			return err
		}

		unsubscribe := client.Watch(func(event session.Event, _ *types.Session) {
			if event == session.EventSignedOut {
				fmt.Println("Signed out.")
			}
		})
		defer unsubscribe()

		return client.SignOut(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
