// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmerge/internal/session"
	"github.com/pdiddy/docmerge/pkg/types"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the identity provider",
	Long: `Login exchanges an email and password for a session and stores it
locally so later commands run authenticated. The password is read from
standard input when not given as a flag.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().String("email", "", "account email address")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		return fmt.Errorf("provide --email")
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	client, err := session.NewClient(clientConfig().Auth)
	if err != nil {
		return err
	}

	unsubscribe := client.Watch(func(event session.Event, s *types.Session) {
		if event == session.EventSignedIn {
			fmt.Printf("Signed in as %s\n", s.User.Email)
		}
	})
	defer unsubscribe()

	if _, err := client.SignIn(context.Background(), email, password); err != nil {
		return err
	}
	return nil
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := session.NewClient(clientConfig().Auth)
		if err != nil {
			return err
		}
		s, err := client.Current()
		if err != nil {
			return fmt.Errorf("not signed in")
		}
		fmt.Printf("%s (%s)\n", s.User.Email, s.User.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
