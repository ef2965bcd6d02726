package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvinuesa/puxporter/internal/selftest"
)

var generateFlags struct {
	file string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic test archive",
	Long: `Generate a synthetic .1pux archive covering every routing path: a login,
a generated password, a credit card, a secure note, an identity, and a
document with an attachment.

Examples:
  # Write the default inputs/test_data.1pux
  puxporter generate

  # Write to a chosen path
  puxporter generate -f /tmp/sample.1pux`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selftest.GenerateArchive(generateFlags.file); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Generated test archive: %s\n", generateFlags.file)
		return nil
	},
}

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Generate a test archive, export it, and validate the outputs",
	Long: `Run the automated self-test: generate the synthetic archive, export it,
and validate the CSV header, the login row count, and the presence of
the category folders. Artifacts are left in place for inspection; use
'puxporter cleanup' or 'puxporter cycle' to remove them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selftest.Run("."); err != nil {
			return fmt.Errorf("self-test failed: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Self-test passed.")
		return nil
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove generated test archives and outputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selftest.Cleanup("."); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Cleanup complete.")
		return nil
	},
}

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Run the full generate, test, cleanup cycle",
	Long: `Run the self-test and clean up afterwards. When the self-test fails,
cleanup is skipped so the artifacts stay around for inspection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selftest.Run("."); err != nil {
			return fmt.Errorf("self-test failed (artifacts preserved for inspection): %w", err)
		}
		fmt.Fprintln(os.Stderr, "Self-test passed.")
		if err := selftest.Cleanup("."); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Full test cycle completed successfully.")
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateFlags.file, "file", "f", selftest.DefaultArchivePath, "Archive path to write")
}
