package onepux

import "strings"

// Login field designations.
const (
	designationUsername = "username"
	designationPassword = "password"
)

// OTPAuthPrefix marks a TOTP value that is already a full otpauth:// URI.
const OTPAuthPrefix = "otpauth://"

// Every extractor here is total: absence yields the empty string.

// Username returns the value of the first login field designated as the
// username.
func (it *Item) Username() string {
	return it.loginFieldValue(designationUsername)
}

// Password returns the value of the first login field designated as the
// password.
func (it *Item) Password() string {
	return it.loginFieldValue(designationPassword)
}

func (it *Item) loginFieldValue(designation string) string {
	for _, f := range it.Details.LoginFields {
		if f.Designation == designation {
			return f.Value
		}
	}
	return ""
}

// PrimaryURL returns the overview's primary URL, falling back to the first
// entry of the overview URL list.
func (it *Item) PrimaryURL() string {
	if it.Overview.URL != "" {
		return it.Overview.URL
	}
	if len(it.Overview.URLs) > 0 {
		return it.Overview.URLs[0].URL
	}
	return ""
}

// Notes returns the item's plain-text notes verbatim. Markdown-like markup
// inside is passed through literally.
func (it *Item) Notes() string {
	return it.Details.NotesPlain
}

// Title returns the overview title, or "Untitled" when the export carries
// none.
func (it *Item) Title() string {
	if it.Overview.Title != "" {
		return it.Overview.Title
	}
	return "Untitled"
}

// OTPAuth scans the item's sections in document order for a TOTP value and
// returns it as an otpauth:// URI. Values already in URI form pass through
// unchanged; raw secrets are wrapped as otpauth://totp/?secret=<secret>.
func (it *Item) OTPAuth() string {
	for _, section := range it.Details.Sections {
		for _, field := range section.Fields {
			if field.Value.Kind != KindTOTP || field.Value.Scalar == "" {
				continue
			}
			if strings.HasPrefix(field.Value.Scalar, OTPAuthPrefix) {
				return field.Value.Scalar
			}
			return "otpauth://totp/?secret=" + field.Value.Scalar
		}
	}
	return ""
}
