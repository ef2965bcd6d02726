// Package onepux reads 1Password .1pux export archives.
//
// A .1pux file is a ZIP container holding two JSON documents
// (export.attributes and export.data) plus binary attachment members under
// the files/ prefix. The types here mirror the on-disk JSON structure.
package onepux

// Attributes is the export.attributes document.
type Attributes struct {
	Version     int    `json:"version"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"`
}

// Export is the export.data document: every account, vault, and item in
// the export.
type Export struct {
	Accounts []Account `json:"accounts"`
}

// Account is one 1Password account in the export.
type Account struct {
	Attrs  AccountAttrs `json:"attrs"`
	Vaults []Vault      `json:"vaults"`
}

// AccountAttrs carries account metadata.
type AccountAttrs struct {
	AccountName string `json:"accountName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	UUID        string `json:"uuid"`
	Domain      string `json:"domain"`
}

// Vault is a named collection of items within an account.
type Vault struct {
	Attrs VaultAttrs `json:"attrs"`
	Items []Item     `json:"items"`
}

// VaultAttrs carries vault metadata.
type VaultAttrs struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Desc string `json:"desc"`
	Type string `json:"type"`
}

// Item is one record of any category (login, card, note, document, ...).
// Items are read once from the data document and never written back.
type Item struct {
	UUID         string   `json:"uuid"`
	FavIndex     int      `json:"favIndex"`
	CreatedAt    int64    `json:"createdAt"`
	UpdatedAt    int64    `json:"updatedAt"`
	State        string   `json:"state"`
	CategoryUUID string   `json:"categoryUuid"`
	Overview     Overview `json:"overview"`
	Details      Details  `json:"details"`
}

// Overview holds the item's display metadata.
type Overview struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	URL      string     `json:"url"`
	URLs     []URLEntry `json:"urls"`
	Tags     []string   `json:"tags"`
}

// URLEntry is one labeled URL in an item overview.
type URLEntry struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Details holds the item's field payload.
type Details struct {
	LoginFields        []LoginField        `json:"loginFields"`
	NotesPlain         string              `json:"notesPlain"`
	Sections           []Section           `json:"sections"`
	DocumentAttributes *DocumentAttributes `json:"documentAttributes,omitempty"`
	PasswordHistory    []PasswordHistory   `json:"passwordHistory,omitempty"`
}

// LoginField is a form field captured for login items. The Designation
// marks the username and password fields.
type LoginField struct {
	Value       string `json:"value"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	FieldType   string `json:"fieldType"`
	Designation string `json:"designation"`
}

// Section is a named group of fields, used heavily by non-login categories.
type Section struct {
	Title  string         `json:"title"`
	Name   string         `json:"name"`
	Fields []SectionField `json:"fields"`
}

// SectionField is one field inside a section. Its value uses the
// polymorphic FieldValue encoding.
type SectionField struct {
	Title string     `json:"title"`
	ID    string     `json:"id"`
	Value FieldValue `json:"value"`
}

// DocumentAttributes describes the document-level attachment of Document
// category items.
type DocumentAttributes struct {
	DocumentID string `json:"documentId"`
	FileName   string `json:"fileName"`
}

// PasswordHistory is a previously used password with its change time.
type PasswordHistory struct {
	Value string `json:"value"`
	Time  int64  `json:"time"`
}
