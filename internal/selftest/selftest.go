package selftest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvinuesa/puxporter/internal/export"
)

// expectedCSVHeader is the quoted header line the import schema requires.
const expectedCSVHeader = `"Title","URL","Username","Password","Notes","OTPAuth"`

// Run generates the synthetic archive under workDir, exports it, and
// validates the outputs. Any failed check is returned as an error;
// artifacts are left in place for inspection.
func Run(workDir string) error {
	archivePath := archivePathIn(workDir)
	outputDir := outputDirIn(workDir)

	if err := GenerateArchive(archivePath); err != nil {
		return fmt.Errorf("generate test archive: %w", err)
	}

	stats, err := export.Run(export.Options{
		InputPath: archivePath,
		OutputDir: outputDir,
		Quiet:     true,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if err := validateCSV(export.CSVPath(outputDir)); err != nil {
		return err
	}
	if err := validateFolders(export.NonPasswordDir(outputDir)); err != nil {
		return err
	}

	if stats.SkippedItems != 1 {
		return fmt.Errorf("expected 1 skipped item (generated password), got %d", stats.SkippedItems)
	}
	if stats.AttachmentsExtracted != 1 {
		return fmt.Errorf("expected 1 extracted attachment, got %d", stats.AttachmentsExtracted)
	}
	if len(stats.Errors) > 0 {
		return fmt.Errorf("export recorded %d errors, first: %s", len(stats.Errors), stats.Errors[0])
	}

	return nil
}

// validateCSV checks the passwords CSV: present, the quoted header, and
// exactly one data row for the single synthetic login.
func validateCSV(csvPath string) error {
	data, err := os.ReadFile(csvPath)
	if err != nil {
		return fmt.Errorf("passwords CSV not readable: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < 2 {
		return fmt.Errorf("CSV has insufficient data (%d lines)", len(lines))
	}
	if !strings.HasPrefix(lines[0], expectedCSVHeader) {
		return fmt.Errorf("CSV header mismatch: expected %s, got %s", expectedCSVHeader, lines[0])
	}
	if len(lines) != 2 {
		return fmt.Errorf("expected header plus 1 login row, got %d lines", len(lines))
	}
	return nil
}

// validateFolders checks the non-password tree: at least the card, note,
// and identity category folders, and no folder for the skipped Password
// category.
func validateFolders(nonPasswordDir string) error {
	entries, err := os.ReadDir(nonPasswordDir)
	if err != nil {
		return fmt.Errorf("non-password data directory not readable: %w", err)
	}

	var categories []string
	for _, entry := range entries {
		if entry.IsDir() {
			categories = append(categories, entry.Name())
		}
	}
	if len(categories) < 3 {
		return fmt.Errorf("expected at least 3 category folders, got %d", len(categories))
	}
	for _, name := range categories {
		if name == "Password" {
			return fmt.Errorf("skipped Password category must not produce a folder")
		}
	}

	for _, required := range []string{"Credit Card", "Secure Note", "Identity"} {
		if _, err := os.Stat(filepath.Join(nonPasswordDir, required)); err != nil {
			return fmt.Errorf("missing category folder %q", required)
		}
	}
	return nil
}
