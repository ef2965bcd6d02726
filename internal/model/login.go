// Package model defines the output-side projections shared by the CSV,
// KeePass, and CXF writers.
package model

// LoginRecord is one login item flattened for export. Titles are already
// de-duplicated by the time a record exists, so every writer sees the same
// final title.
type LoginRecord struct {
	Title    string
	URL      string
	Username string
	Password string
	Notes    string
	OTPAuth  string
}
