package export

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const pipelineExportData = `{
  "accounts": [
    {
      "attrs": {"accountName": "Personal"},
      "vaults": [
        {
          "attrs": {"name": "Private"},
          "items": [
            {
              "uuid": "l1",
              "categoryUuid": "001",
              "overview": {"title": "GitHub", "url": "https://github.com"},
              "details": {
                "loginFields": [
                  {"value": "octo", "designation": "username"},
                  {"value": "pw1", "designation": "password"}
                ],
                "sections": [
                  {"title": "Extra", "fields": [
                    {"title": "one-time password", "id": "TOTP_x", "value": {"totp": "JBSWY3DP"}}
                  ]}
                ]
              }
            },
            {
              "uuid": "l2",
              "categoryUuid": "001",
              "overview": {"title": "GitHub"},
              "details": {
                "loginFields": [
                  {"value": "octo2", "designation": "username"},
                  {"value": "pw2", "designation": "password"}
                ]
              }
            },
            {
              "uuid": "g1",
              "categoryUuid": "005",
              "overview": {"title": "generated"},
              "details": {}
            },
            {
              "uuid": "c1",
              "categoryUuid": "002",
              "overview": {"title": "Visa"},
              "details": {
                "sections": [
                  {"title": "", "fields": [
                    {"title": "number", "id": "ccnum", "value": {"creditCardNumber": "4111111111111111"}},
                    {"title": "expiry date", "id": "expiry", "value": {"monthYear": 202612}}
                  ]}
                ]
              }
            },
            {
              "uuid": "c2",
              "categoryUuid": "002",
              "overview": {"title": "Visa"},
              "details": {}
            },
            {
              "uuid": "d1",
              "categoryUuid": "006",
              "overview": {"title": "Insurance"},
              "details": {
                "documentAttributes": {"documentId": "doc123", "fileName": "card.pdf"}
              }
            },
            {
              "uuid": "n1",
              "categoryUuid": "003",
              "overview": {"title": "Note"},
              "details": {
                "notesPlain": "remember",
                "sections": [
                  {"title": "Files", "fields": [
                    {"title": "file", "id": "f1", "value": {"file": {"fileName": "gone.txt", "documentId": "missing1"}}}
                  ]}
                ]
              }
            }
          ]
        }
      ]
    }
  ]
}`

// writePipelineArchive writes a full export archive covering every routing
// arm: logins with duplicate titles, a generated password, duplicate card
// titles, a document with its attachment payload, and a note referencing a
// missing attachment.
func writePipelineArchive(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.1pux")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)

	members := []struct {
		name    string
		content string
	}{
		{"export.attributes", `{"version": 3, "description": "1Password export"}`},
		{"export.data", pipelineExportData},
		{"files/doc123__card.pdf", "PDFDATA"},
	}
	for _, m := range members {
		w, err := zw.Create(m.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(m.content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func readOutputFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestRun(t *testing.T) {
	workDir := t.TempDir()
	archivePath := writePipelineArchive(t, workDir)
	outputDir := filepath.Join(workDir, "outputs")

	// Stale output from a previous run must be cleared.
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(outputDir, "stale.txt")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	stats, err := Run(Options{InputPath: archivePath, OutputDir: outputDir, Quiet: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale output file survived the run")
	}

	t.Run("Stats", func(t *testing.T) {
		if stats.TotalItems != 7 {
			t.Errorf("TotalItems = %d, want 7", stats.TotalItems)
		}
		if stats.PasswordItems != 2 {
			t.Errorf("PasswordItems = %d, want 2", stats.PasswordItems)
		}
		if stats.NonPasswordItems != 4 {
			t.Errorf("NonPasswordItems = %d, want 4", stats.NonPasswordItems)
		}
		if stats.SkippedItems != 1 {
			t.Errorf("SkippedItems = %d, want 1", stats.SkippedItems)
		}
		if stats.AttachmentsExtracted != 1 {
			t.Errorf("AttachmentsExtracted = %d, want 1", stats.AttachmentsExtracted)
		}
		if len(stats.Errors) != 1 {
			t.Fatalf("Errors = %v, want exactly one", stats.Errors)
		}
		if want := "attachment not found in archive: gone.txt (ID: missing1)"; stats.Errors[0] != want {
			t.Errorf("Errors[0] = %q, want %q", stats.Errors[0], want)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		got := readOutputFile(t, CSVPath(outputDir))
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		if len(lines) != 3 {
			t.Fatalf("csv has %d lines, want 3:\n%s", len(lines), got)
		}
		if lines[0] != `"Title","URL","Username","Password","Notes","OTPAuth"` {
			t.Errorf("header = %q", lines[0])
		}
		if lines[1] != `"GitHub","https://github.com","octo","pw1","","otpauth://totp/?secret=JBSWY3DP"` {
			t.Errorf("row 1 = %q", lines[1])
		}
		if lines[2] != `"GitHub_2","","octo2","pw2","",""` {
			t.Errorf("row 2 = %q", lines[2])
		}
	})

	nonPassword := NonPasswordDir(outputDir)

	t.Run("Card folders", func(t *testing.T) {
		doc := readOutputFile(t, filepath.Join(nonPassword, "Credit Card", "Visa", "Visa.txt"))
		for _, want := range []string{
			"Visa",
			"BASIC INFORMATION",
			"Category: Credit Card",
			"DETAILS",
			"number: 4111111111111111",
			"expiry date: 12/2026",
		} {
			if !strings.Contains(doc, want) {
				t.Errorf("Visa.txt missing %q\n%s", want, doc)
			}
		}

		// Duplicate card title gets its own suffixed folder; the document
		// inside keeps the unsuffixed name.
		if _, err := os.Stat(filepath.Join(nonPassword, "Credit Card", "Visa_2", "Visa.txt")); err != nil {
			t.Errorf("Visa_2 folder: %v", err)
		}
	})

	t.Run("Document attachment", func(t *testing.T) {
		folder := filepath.Join(nonPassword, "Document", "Insurance")
		payload := readOutputFile(t, filepath.Join(folder, "card.pdf"))
		if payload != "PDFDATA" {
			t.Errorf("attachment payload = %q, want PDFDATA", payload)
		}

		doc := readOutputFile(t, filepath.Join(folder, "Insurance.txt"))
		for _, want := range []string{
			"ATTACHMENTS",
			"This item has 1 attachment(s) in this folder:",
			"  • card.pdf",
		} {
			if !strings.Contains(doc, want) {
				t.Errorf("Insurance.txt missing %q\n%s", want, doc)
			}
		}
	})

	t.Run("Note", func(t *testing.T) {
		doc := readOutputFile(t, filepath.Join(nonPassword, "Secure Note", "Note", "Note.txt"))
		if !strings.Contains(doc, "NOTES\nremember") {
			t.Errorf("Note.txt missing notes block\n%s", doc)
		}
		// The referenced attachment is missing, so no block is written.
		if strings.Contains(doc, "ATTACHMENTS") {
			t.Errorf("Note.txt has an attachments block for a missing payload\n%s", doc)
		}
	})

	t.Run("No folder for skipped categories", func(t *testing.T) {
		if _, err := os.Stat(filepath.Join(nonPassword, "Password")); !os.IsNotExist(err) {
			t.Error("generated-password category produced a folder")
		}
		if _, err := os.Stat(filepath.Join(nonPassword, "Login")); !os.IsNotExist(err) {
			t.Error("login category produced a folder")
		}
	})
}

func TestRunMissingInput(t *testing.T) {
	_, err := Run(Options{
		InputPath: filepath.Join(t.TempDir(), "absent.1pux"),
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Quiet:     true,
	})
	if err == nil {
		t.Fatal("Run() error = nil, want missing-file error")
	}
}
