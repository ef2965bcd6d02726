package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvinuesa/puxporter/internal/export"
)

var exportFlags struct {
	output       string
	kdbxPath     string
	kdbxPassword string
	cxfPath      string
	quiet        bool
	verbose      bool
}

func init() {
	rootCmd.Flags().StringVarP(&exportFlags.output, "output", "o", export.DefaultOutputDir, "Output directory (cleared at the start of every run)")
	rootCmd.Flags().StringVar(&exportFlags.kdbxPath, "kdbx", "", "Additionally write login items to a KeePass database at this path")
	rootCmd.Flags().StringVar(&exportFlags.kdbxPassword, "kdbx-password", "", "Master password for the KeePass output (prompted if omitted)")
	rootCmd.Flags().StringVar(&exportFlags.cxfPath, "cxf", "", "Additionally write login items as unencrypted CXF JSON at this path")
	rootCmd.Flags().BoolVarP(&exportFlags.quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.Flags().BoolVarP(&exportFlags.verbose, "verbose", "v", false, "Verbose output")
}

func runExport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("input file is required (see 'puxporter --help')")
	}
	inputPath := args[0]

	kdbxPassword := exportFlags.kdbxPassword
	if exportFlags.kdbxPath != "" && kdbxPassword == "" {
		var err error
		kdbxPassword, err = promptPassword(fmt.Sprintf("Enter master password for %s: ", exportFlags.kdbxPath))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if !exportFlags.quiet {
		fmt.Fprintf(os.Stderr, "Processing 1Password export file: %s\n", inputPath)
	}

	stats, err := export.Run(export.Options{
		InputPath:    inputPath,
		OutputDir:    exportFlags.output,
		KDBXPath:     exportFlags.kdbxPath,
		KDBXPassword: kdbxPassword,
		CXFPath:      exportFlags.cxfPath,
		Quiet:        exportFlags.quiet,
		Verbose:      exportFlags.verbose,
	})
	if err != nil {
		return err
	}

	if !exportFlags.quiet {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, stats.Summary(
			export.CSVPath(exportFlags.output),
			export.NonPasswordDir(exportFlags.output),
		))
	}
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // newline after password
	return string(password), err
}
