// Package export runs the 1pux export pipeline: archive in, passwords CSV
// and per-item text folders out.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nvinuesa/puxporter/internal/cxf"
	"github.com/nvinuesa/puxporter/internal/kdbx"
	"github.com/nvinuesa/puxporter/internal/onepux"
)

// Output layout constants.
const (
	// DefaultOutputDir is the output root used when none is given.
	DefaultOutputDir = "outputs"
	// CSVFileName is the passwords CSV file name inside the output root.
	CSVFileName = "exported_passwords.csv"
	// NonPasswordDirName is the directory holding all non-login items.
	NonPasswordDirName = "non_password_data"
)

// Options configures a run.
type Options struct {
	// InputPath is the .1pux archive to export.
	InputPath string
	// OutputDir is the output root, cleared at the start of the run.
	// Defaults to DefaultOutputDir.
	OutputDir string

	// KDBXPath, when set, additionally writes the login items to a
	// KeePass database protected by KDBXPassword.
	KDBXPath     string
	KDBXPassword string

	// CXFPath, when set, additionally writes the login items as
	// unencrypted CXF JSON.
	CXFPath string

	// Quiet suppresses progress and warning output. Verbose adds
	// per-vault progress.
	Quiet   bool
	Verbose bool

	// Stderr receives progress and warnings; defaults to os.Stderr.
	Stderr io.Writer
}

// CSVPath returns the passwords CSV location for an output root.
func CSVPath(outputDir string) string {
	return filepath.Join(outputDir, CSVFileName)
}

// NonPasswordDir returns the non-password data location for an output root.
func NonPasswordDir(outputDir string) string {
	return filepath.Join(outputDir, NonPasswordDirName)
}

func (opts Options) logf(format string, args ...any) {
	if opts.Quiet {
		return
	}
	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Run executes the full export and returns the run report. Structural
// failures (missing file, not an archive, unparseable documents) abort
// before any output is written; everything after that is per-item
// isolated, recorded in the returned Stats, and never stops the run.
func Run(opts Options) (*Stats, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}

	archive, err := onepux.Open(opts.InputPath)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	if archive.ExtensionMismatch() {
		opts.logf("Warning: input file does not have the %s extension.", onepux.Extension)
	}

	attrs, err := archive.ReadAttributes()
	if err != nil {
		return nil, err
	}
	opts.logf("Export format version: %d", attrs.Version)
	if attrs.Version != onepux.SupportedVersion {
		opts.logf("Warning: expected format version %d, found %d. Proceeding anyway...",
			onepux.SupportedVersion, attrs.Version)
	}

	exportData, err := archive.ReadExport()
	if err != nil {
		return nil, err
	}

	// The run owns the output tree: clear it so no prior state leaks in.
	if err := os.RemoveAll(opts.OutputDir); err != nil {
		return nil, err
	}
	nonPasswordDir := NonPasswordDir(opts.OutputDir)
	if err := os.MkdirAll(nonPasswordDir, 0o755); err != nil {
		return nil, err
	}

	if opts.Verbose {
		for _, account := range exportData.Accounts {
			opts.logf("Processing account: %s", account.Attrs.AccountName)
			for _, vault := range account.Vaults {
				opts.logf("  Processing vault: %s (%d items)", vault.Attrs.Name, len(vault.Items))
			}
		}
	}

	stats := &Stats{}
	text := &textExporter{archive: archive, root: nonPasswordDir, stats: stats}

	var logins []onepux.WalkedItem
	for _, wi := range onepux.Walk(exportData) {
		stats.TotalItems++
		categoryID := wi.Item.CategoryUUID

		switch {
		case onepux.IsGeneratedPassword(categoryID):
			stats.SkippedItems++
		case onepux.IsLogin(categoryID):
			logins = append(logins, wi)
		default:
			if err := text.exportItem(wi.Item, onepux.Classify(categoryID)); err != nil {
				stats.AddError("error exporting item %q: %v", wi.Item.Title(), err)
			}
		}
	}

	records := BuildLoginRecords(logins)
	if err := WriteCSV(CSVPath(opts.OutputDir), records); err != nil {
		return nil, err
	}
	stats.PasswordItems = len(records)
	opts.logf("Exported %d password items to: %s", stats.PasswordItems, CSVPath(opts.OutputDir))

	if opts.KDBXPath != "" {
		if err := kdbx.Write(opts.KDBXPath, opts.KDBXPassword, records); err != nil {
			return nil, fmt.Errorf("failed to write KeePass output: %w", err)
		}
		opts.logf("Wrote KeePass database: %s", opts.KDBXPath)
	}

	if opts.CXFPath != "" && len(records) == 0 {
		opts.logf("No login items; skipping CXF output")
	} else if opts.CXFPath != "" {
		header, err := cxf.Generate(records, cxf.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to generate CXF output: %w", err)
		}
		if err := cxf.WriteFile(opts.CXFPath, header); err != nil {
			return nil, fmt.Errorf("failed to write CXF output: %w", err)
		}
		opts.logf("Wrote CXF export: %s", opts.CXFPath)
	}

	return stats, nil
}
