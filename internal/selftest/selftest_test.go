package selftest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvinuesa/puxporter/internal/onepux"
)

func TestGenerateArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs", "test_data.1pux")
	if err := GenerateArchive(path); err != nil {
		t.Fatalf("GenerateArchive() error = %v", err)
	}

	a, err := onepux.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer a.Close()

	attrs, err := a.ReadAttributes()
	if err != nil {
		t.Fatalf("ReadAttributes() error = %v", err)
	}
	if attrs.Version != onepux.SupportedVersion {
		t.Errorf("version = %d, want %d", attrs.Version, onepux.SupportedVersion)
	}

	export, err := a.ReadExport()
	if err != nil {
		t.Fatalf("ReadExport() error = %v", err)
	}
	walked := onepux.Walk(export)
	if len(walked) != 6 {
		t.Errorf("items = %d, want 6", len(walked))
	}

	// The document item's attachment payload must be present under files/.
	var docID string
	for _, wi := range walked {
		if doc := wi.Item.Details.DocumentAttributes; doc != nil {
			docID = doc.DocumentID
		}
	}
	if docID == "" {
		t.Fatal("no item carries document attributes")
	}
	if a.FindMemberWithPrefix(onepux.FilesPrefix+docID) == nil {
		t.Errorf("no archive member for document id %s", docID)
	}
}

func TestRun(t *testing.T) {
	workDir := t.TempDir()
	if err := Run(workDir); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Artifacts stay in place for inspection after a passing run.
	if _, err := os.Stat(archivePathIn(workDir)); err != nil {
		t.Errorf("archive missing after run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputDirIn(workDir), "exported_passwords.csv"))
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}
	if !strings.Contains(string(data), `"Example Website","https://www.example.com","user@example.com"`) {
		t.Errorf("CSV missing synthetic login row:\n%s", data)
	}
	if !strings.Contains(string(data), "otpauth://totp/?secret=ABCD1234") {
		t.Errorf("CSV missing OTP URI:\n%s", data)
	}
}

func TestCleanup(t *testing.T) {
	workDir := t.TempDir()
	if err := Run(workDir); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := Cleanup(workDir); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	if _, err := os.Stat(archivePathIn(workDir)); !os.IsNotExist(err) {
		t.Error("archive survived cleanup")
	}
	if _, err := os.Stat(outputDirIn(workDir)); !os.IsNotExist(err) {
		t.Error("output directory survived cleanup")
	}
	if _, err := os.Stat(filepath.Join(workDir, "inputs")); !os.IsNotExist(err) {
		t.Error("empty inputs directory survived cleanup")
	}
}

func TestCleanupWithoutArtifacts(t *testing.T) {
	if err := Cleanup(t.TempDir()); err != nil {
		t.Errorf("Cleanup() on empty dir error = %v", err)
	}
}
