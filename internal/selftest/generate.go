// Package selftest generates a synthetic export archive and validates the
// exporter end to end against it.
package selftest

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nvinuesa/puxporter/internal/onepux"
)

// Default artifact locations, relative to the working directory.
const (
	DefaultArchivePath = "inputs/test_data.1pux"
	DefaultOutputDir   = "outputs"
)

// attachmentContent is the payload of the synthetic Document item's
// attachment.
var attachmentContent = []byte("Synthetic attachment payload for self-test runs.\n")

// GenerateArchive writes a synthetic .1pux archive to path: one account
// and vault holding a login, a generated password, a credit card, a secure
// note, an identity, and a document with an attachment member.
func GenerateArchive(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)

	attrs := map[string]any{
		"version":     onepux.SupportedVersion,
		"description": "1Password Unencrypted Export",
		"createdAt":   time.Now().Unix(),
	}
	if err := writeJSONMember(zw, onepux.AttributesDocument, attrs); err != nil {
		zw.Close()
		f.Close()
		return err
	}

	documentID := uuid.NewString()
	if err := writeJSONMember(zw, onepux.DataDocument, buildExportData(documentID)); err != nil {
		zw.Close()
		f.Close()
		return err
	}

	member, err := zw.Create(onepux.FilesPrefix + documentID + "__insurance_card.pdf")
	if err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if _, err := member.Write(attachmentContent); err != nil {
		zw.Close()
		f.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSONMember(zw *zip.Writer, name string, doc any) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// buildExportData assembles the export.data document. Item shapes follow
// the real export format: login fields with designations, section fields
// with wrapped values, and a document-level attachment descriptor.
func buildExportData(documentID string) map[string]any {
	items := []map[string]any{
		{
			"uuid":         "test_login_001",
			"categoryUuid": "001",
			"state":        "active",
			"overview": map[string]any{
				"title": "Example Website",
				"url":   "https://www.example.com",
				"urls":  []map[string]any{{"label": "", "url": "https://www.example.com"}},
				"tags":  []string{"work", "important"},
			},
			"details": map[string]any{
				"loginFields": []map[string]any{
					{
						"value":       "user@example.com",
						"name":        "username",
						"fieldType":   "E",
						"designation": "username",
					},
					{
						"value":       "SecureTestPass123!",
						"name":        "password",
						"fieldType":   "P",
						"designation": "password",
					},
				},
				"notesPlain": "This is a test login entry with *bold* and _italic_ markdown.",
				"sections": []map[string]any{
					{
						"title": "Additional Info",
						"name":  "Section_test_001",
						"fields": []map[string]any{
							{
								"title": "Security Question",
								"value": "Mother's maiden name",
							},
							{
								"title": "one-time password",
								"value": map[string]any{"totp": "ABCD1234"},
							},
						},
					},
				},
			},
		},
		{
			"uuid":         "test_password_002",
			"categoryUuid": "005",
			"state":        "active",
			"overview": map[string]any{
				"title": "WiFi Password",
				"tags":  []string{"home"},
			},
			"details": map[string]any{
				"loginFields": []map[string]any{
					{
						"value":       "MyWiFiPassword2024",
						"name":        "password",
						"fieldType":   "P",
						"designation": "password",
					},
				},
				"notesPlain": "Home network password",
			},
		},
		{
			"uuid":         "test_card_003",
			"categoryUuid": "002",
			"state":        "active",
			"overview": map[string]any{
				"title": "Test Visa Card",
				"tags":  []string{"finance"},
			},
			"details": map[string]any{
				"notesPlain": "Primary credit card",
				"sections": []map[string]any{
					{
						"title": "",
						"name":  "Section_card_details",
						"fields": []map[string]any{
							{"title": "cardholder name", "value": "John Test Doe"},
							{"title": "type", "value": "Visa"},
							{"title": "number", "value": map[string]any{"concealed": "4111111111111111"}},
							{"title": "cvv", "value": map[string]any{"concealed": "123"}},
							{"title": "expiry date", "value": map[string]any{"monthYear": 202612}},
						},
					},
				},
			},
		},
		{
			"uuid":         "test_note_004",
			"categoryUuid": "003",
			"state":        "active",
			"overview": map[string]any{
				"title": "Important Notes",
				"tags":  []string{"personal"},
			},
			"details": map[string]any{
				"notesPlain": "This is a test secure note.\nLine 2 with more information.\nLine 3 with special chars: @#$%^&*()",
			},
		},
		{
			"uuid":         "test_identity_005",
			"categoryUuid": "004",
			"state":        "active",
			"overview": map[string]any{
				"title": "Personal Identity",
				"tags":  []string{},
			},
			"details": map[string]any{
				"sections": []map[string]any{
					{
						"title": "Identification",
						"name":  "Section_identity",
						"fields": []map[string]any{
							{"title": "first name", "value": "John"},
							{"title": "last name", "value": "Doe"},
							{"title": "email", "value": "john.doe@example.com"},
							{"title": "phone", "value": "555-0123"},
						},
					},
				},
			},
		},
		{
			"uuid":         "test_document_006",
			"categoryUuid": "006",
			"state":        "active",
			"overview": map[string]any{
				"title": "Insurance Card",
				"tags":  []string{"health"},
			},
			"details": map[string]any{
				"notesPlain": "Scan of the insurance card.",
				"documentAttributes": map[string]any{
					"documentId": documentID,
					"fileName":   "insurance_card.pdf",
				},
			},
		},
	}

	return map[string]any{
		"accounts": []map[string]any{
			{
				"attrs": map[string]any{
					"accountName": "Test User",
					"name":        "Test User",
					"email":       "test@example.com",
					"uuid":        uuid.NewString(),
					"domain":      "https://my.1password.com/",
				},
				"vaults": []map[string]any{
					{
						"attrs": map[string]any{
							"uuid": uuid.NewString(),
							"name": "Test Vault",
							"desc": "Synthetic vault for self-test runs",
							"type": "P",
						},
						"items": items,
					},
				},
			},
		},
	}
}

// archivePathIn returns the synthetic archive location under workDir.
func archivePathIn(workDir string) string {
	return filepath.Join(workDir, filepath.FromSlash(DefaultArchivePath))
}

// outputDirIn returns the output root under workDir.
func outputDirIn(workDir string) string {
	return filepath.Join(workDir, DefaultOutputDir)
}

// Cleanup removes the generated archive and the output tree under
// workDir.
func Cleanup(workDir string) error {
	archivePath := archivePathIn(workDir)
	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", archivePath, err)
	}
	// Drop the inputs directory too if it is now empty.
	os.Remove(filepath.Dir(archivePath))

	outputDir := outputDirIn(workDir)
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("remove %s: %w", outputDir, err)
	}
	return nil
}
