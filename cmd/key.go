// Copyright (c) 2025 Csvlate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"strings"

	"csvlate/cli/internal/keychain"
	"csvlate/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// keyCmd groups the API key management subcommands. The DeepL API key is
// stored in the OS keychain; the DEEPL_API_KEY environment variable always
// takes precedence over the stored key at run time.
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored DeepL API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store the DeepL API key in the OS keychain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(args[0])
		if key == "" {
			return errors.New("API key must not be empty")
		}
		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("⚠️  Secure storage is unavailable on this system.")
			pterm.Println("   Set the DEEPL_API_KEY environment variable instead:")
			pterm.Println("   export DEEPL_API_KEY='xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx:fx'")
			return err
		}
		if err := km.SaveAPIKey(key); err != nil {
			return err
		}
		pterm.Println("✅ API key stored in the OS keychain.")
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored DeepL API key (masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		key, err := km.LoadAPIKey()
		if err != nil {
			pterm.Println("No API key stored. Run: csvlate key set <api-key>")
			return nil
		}
		pterm.Println("Stored API key: " + logging.MaskKey(key))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored DeepL API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		if err := km.ClearAPIKey(); err != nil {
			return err
		}
		pterm.Println("✅ API key removed from the OS keychain.")
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
	rootCmd.AddCommand(keyCmd)
}
