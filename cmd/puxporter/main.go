// Package main provides the entry point for the puxporter CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-edge"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "puxporter <export.1pux>",
	Short: "Export a 1Password .1pux archive to CSV and text files",
	Long: `puxporter converts a 1Password export archive (.1pux) into a passwords
CSV compatible with the Apple Passwords import schema, plus a directory
tree of human-readable text files for all non-login record types, with
their attachments copied alongside.

Login items go to the CSV; every other category gets one folder per item
under non_password_data/<Category>/. Unused generated passwords
(category 005) are dropped from both outputs.

Examples:
  # Run the full export
  puxporter vault_export.1pux

  # Choose the output directory
  puxporter vault_export.1pux --output ~/exported

  # Additionally write logins to a KeePass database
  puxporter vault_export.1pux --kdbx logins.kdbx

  # Additionally write logins as FIDO CXF JSON
  puxporter vault_export.1pux --cxf logins.cxf.json

  # Generate a synthetic archive and validate the exporter against it
  puxporter selftest`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runExport,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(cycleCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
