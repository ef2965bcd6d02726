package onepux

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"strings"
)

// Archive member names and constants.
const (
	// AttributesDocument is the export metadata member.
	AttributesDocument = "export.attributes"
	// DataDocument is the member holding all accounts, vaults, and items.
	DataDocument = "export.data"
	// FilesPrefix is the member path prefix for attachment payloads,
	// keyed by document id.
	FilesPrefix = "files/"
	// Extension is the expected archive file suffix.
	Extension = ".1pux"
	// SupportedVersion is the export format version this package was
	// written against. Other versions are processed with a warning.
	SupportedVersion = 3
)

// Archive is an opened .1pux container. It owns the underlying read handle
// for the duration of a run and must be closed by the caller.
type Archive struct {
	path string
	zr   *zip.ReadCloser
}

// Open validates that path exists and is a ZIP container, returning the
// opened archive. Structural problems are fatal; an unexpected file
// extension is not, and is reported via ExtensionMismatch instead.
func Open(path string) (*Archive, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrFileNotFound{Path: path}
		}
		return nil, err
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ErrNotAnArchive{Path: path, Err: err}
	}
	return &Archive{path: path, zr: zr}, nil
}

// Path returns the archive file path.
func (a *Archive) Path() string {
	return a.path
}

// ExtensionMismatch reports whether the archive path lacks the expected
// .1pux suffix. Callers surface this as a warning, never an error.
func (a *Archive) ExtensionMismatch() bool {
	return !strings.HasSuffix(strings.ToLower(a.path), Extension)
}

// Close releases the archive read handle.
func (a *Archive) Close() error {
	return a.zr.Close()
}

// Members returns every member of the archive.
func (a *Archive) Members() []*zip.File {
	return a.zr.File
}

// OpenMember opens the named member for reading.
func (a *Archive) OpenMember(name string) (io.ReadCloser, error) {
	for _, f := range a.zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, &ErrMissingDocument{Name: name}
}

// FindMemberWithPrefix returns the first member whose path starts with
// prefix, or nil when none matches. Attachments are stored under
// files/<documentId> with an arbitrary suffix, so prefix matching is how
// document ids resolve to payloads.
func (a *Archive) FindMemberWithPrefix(prefix string) *zip.File {
	for _, f := range a.zr.File {
		if strings.HasPrefix(f.Name, prefix) {
			return f
		}
	}
	return nil
}

// ReadDocument returns the full contents of the named member.
func (a *Archive) ReadDocument(name string) ([]byte, error) {
	rc, err := a.OpenMember(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// ReadAttributes parses the export.attributes document.
func (a *Archive) ReadAttributes() (*Attributes, error) {
	data, err := a.ReadDocument(AttributesDocument)
	if err != nil {
		return nil, err
	}
	var attrs Attributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, &ErrInvalidDocument{Name: AttributesDocument, Err: err}
	}
	return &attrs, nil
}

// ReadExport parses the export.data document.
func (a *Archive) ReadExport() (*Export, error) {
	data, err := a.ReadDocument(DataDocument)
	if err != nil {
		return nil, err
	}
	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, &ErrInvalidDocument{Name: DataDocument, Err: err}
	}
	return &export, nil
}
