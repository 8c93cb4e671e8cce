package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pinpager/pkg/auth"
)

// authCmd groups bot-token management commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Telegram bot token",
	Long: `Manage the Telegram bot token stored in the system keychain.

Storing the token in the keychain keeps it out of config files,
environment variables, and shell history.`,
}

// authSetCmd stores the bot token
var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the bot token in the system keychain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := auth.NewTokenStore()
		if err != nil {
			return err
		}

		fmt.Print("Bot token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}

		token := strings.TrimSpace(string(raw))
		if err := store.Store(token); err != nil {
			return err
		}

		fmt.Println("Token stored.")
		return nil
	},
}

// authStatusCmd reports whether a token is stored
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether a bot token is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := auth.NewTokenStore()
		if err != nil {
			return err
		}

		if store.Exists() {
			fmt.Println("A bot token is stored in the keychain.")
		} else {
			fmt.Println("No bot token stored. Run 'pinpager auth set' to store one.")
		}
		return nil
	},
}

// authDeleteCmd removes the stored token
var authDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored bot token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := auth.NewTokenStore()
		if err != nil {
			return err
		}

		if err := store.Delete(); err != nil {
			if errors.Is(err, auth.ErrTokenNotFound) {
				fmt.Println("No bot token stored.")
				return nil
			}
			return err
		}

		fmt.Println("Token deleted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authDeleteCmd)
}
