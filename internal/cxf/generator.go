// Package cxf maps exported login records to the FIDO Alliance Credential
// Exchange Format, for import into password managers that speak CXF.
package cxf

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nvinuesa/go-cxf"

	"github.com/nvinuesa/puxporter/internal/model"
)

// Generator errors.
var (
	ErrNoRecords       = errors.New("no login records provided")
	ErrMissingRpID     = errors.New("exporter RP ID is required")
	ErrMissingExporter = errors.New("exporter name is required")
)

// Options configures CXF generation.
type Options struct {
	// ExporterRpID is the FIDO RP ID of the exporting application.
	ExporterRpID string
	// ExporterName is the human-readable display name for the exporter.
	ExporterName string
	// AccountName is the username recorded on the single export account.
	AccountName string
	// AccountEmail is the email recorded on the single export account.
	AccountEmail string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		ExporterRpID: "puxporter.local",
		ExporterName: "puxporter",
	}
}

// Generate creates a CXF Header carrying one item per login record: a
// basic-auth credential, a TOTP credential when an OTP secret is present,
// and a note credential for notes.
func Generate(records []model.LoginRecord, opts Options) (*cxf.Header, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if opts.ExporterRpID == "" {
		return nil, ErrMissingRpID
	}
	if opts.ExporterName == "" {
		return nil, ErrMissingExporter
	}

	items := make([]cxf.Item, 0, len(records))
	for i := range records {
		item, err := mapRecord(&records[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	account := cxf.Account{
		ID:       generateBase64URLID(),
		Username: opts.AccountName,
		Email:    opts.AccountEmail,
		Items:    items,
	}

	return &cxf.Header{
		Version: cxf.Version{
			Major: cxf.VersionMajor,
			Minor: cxf.VersionMinor,
		},
		ExporterRpId:        opts.ExporterRpID,
		ExporterDisplayName: opts.ExporterName,
		Timestamp:           uint64(time.Now().Unix()),
		Accounts:            []cxf.Account{account},
	}, nil
}

// WriteFile writes the header as unencrypted CXF JSON.
func WriteFile(path string, header *cxf.Header) error {
	data, err := json.MarshalIndent(header, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o600)
}

// mapRecord converts one login record to a cxf.Item.
func mapRecord(r *model.LoginRecord) (cxf.Item, error) {
	var credentials []json.RawMessage

	basic := cxf.BasicAuthCredential{Type: cxf.CredentialTypeBasicAuth}
	if r.Username != "" {
		basic.Username = makeEditableField(cxf.FieldTypeString, r.Username)
	}
	if r.Password != "" {
		basic.Password = makeEditableField(cxf.FieldTypeConcealedString, r.Password)
	}
	raw, err := marshalCredential(basic)
	if err != nil {
		return cxf.Item{}, err
	}
	credentials = append(credentials, raw)

	if secret := totpSecret(r.OTPAuth); secret != "" {
		totp := cxf.TOTPCredential{
			Type:      cxf.CredentialTypeTOTP,
			Secret:    secret,
			Period:    30,
			Digits:    6,
			Username:  r.Username,
			Algorithm: cxf.OTPHashAlgorithmSha1,
		}
		raw, err := marshalCredential(totp)
		if err != nil {
			return cxf.Item{}, err
		}
		credentials = append(credentials, raw)
	}

	if r.Notes != "" {
		note := cxf.NoteCredential{
			Type:    cxf.CredentialTypeNote,
			Content: makeEditableField(cxf.FieldTypeString, r.Notes),
		}
		raw, err := marshalCredential(note)
		if err != nil {
			return cxf.Item{}, err
		}
		credentials = append(credentials, raw)
	}

	var scope *cxf.CredentialScope
	if r.URL != "" {
		scope = &cxf.CredentialScope{
			Urls:        []string{r.URL},
			AndroidApps: []cxf.AndroidAppIdCredential{},
		}
	}

	return cxf.Item{
		ID:          generateBase64URLID(),
		Title:       r.Title,
		Scope:       scope,
		Credentials: credentials,
	}, nil
}

// totpSecret extracts the secret parameter from an otpauth:// URI.
func totpSecret(otpauth string) string {
	if otpauth == "" {
		return ""
	}
	parsed, err := url.Parse(otpauth)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("secret")
}

// makeEditableField creates an EditableField with the given type and value.
func makeEditableField(fieldType, value string) *cxf.EditableField {
	if value == "" {
		return nil
	}
	marshalled, _ := json.Marshal(value)
	return &cxf.EditableField{
		FieldType: fieldType,
		Value:     marshalled,
	}
}

func marshalCredential(cred any) (json.RawMessage, error) {
	return json.Marshal(cred)
}

// generateBase64URLID generates a base64url-encoded UUID.
func generateBase64URLID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
