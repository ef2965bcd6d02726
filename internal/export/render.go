package export

import (
	"strings"
	"time"
	"unicode"

	"github.com/nvinuesa/puxporter/internal/onepux"
)

// Rendering placeholders. Fields whose rendered value is the empty
// placeholder are skipped by the text exporter.
const (
	emptyPlaceholder = "(empty)"
	nonePlaceholder  = "(none)"
)

// Metadata keys suppressed from generic object rendering.
func isSuppressedKey(key string) bool {
	return key == "provider" || key == "Provider"
}

// RenderFieldValue renders a field value as human-readable text, indented
// two spaces per level. Every text document the exporter writes flows
// through this renderer, so its rules must match the field-value encoding
// variant for variant.
func RenderFieldValue(v onepux.FieldValue, indent int) string {
	pad := strings.Repeat("  ", indent)

	switch v.Kind {
	case onepux.KindAbsent:
		return pad + emptyPlaceholder

	case onepux.KindDate:
		if v.DateValid {
			return pad + time.Unix(v.DateSeconds, 0).Format("2006-01-02")
		}
		return pad + v.Scalar

	case onepux.KindMonthYear:
		if my := v.Scalar; len(my) == 6 {
			return pad + my[4:6] + "/" + my[0:4]
		}
		return pad + v.Scalar

	case onepux.KindAddress:
		if v.Address == nil {
			return pad + v.Scalar
		}
		return renderAddress(v.Address, pad)

	case onepux.KindFile:
		name := "unknown"
		if v.File != nil && v.File.FileName != "" {
			name = v.File.FileName
		}
		return pad + "[Attachment: " + name + "]"

	case onepux.KindReference:
		return pad + "[Reference: " + v.Scalar + "]"

	case onepux.KindList:
		if len(v.List) == 0 {
			return pad + nonePlaceholder
		}
		lines := make([]string, 0, len(v.List))
		for _, elem := range v.List {
			lines = append(lines, pad+"• "+listItemString(elem))
		}
		return strings.Join(lines, "\n")

	case onepux.KindObject:
		return renderObject(v.Object, indent, pad)

	default:
		// Concealed, string, url, email, phone, totp, credit card
		// number and type, gender, menu, and plain scalars all render
		// as their raw value.
		return pad + v.Scalar
	}
}

// renderAddress joins the present address components: street on its own
// line, city/state/zip joined by commas, then country. Absent components
// are omitted entirely.
func renderAddress(addr *onepux.AddressValue, pad string) string {
	var parts []string
	if addr.Street != "" {
		parts = append(parts, addr.Street)
	}
	var cityLine []string
	for _, s := range []string{addr.City, addr.State, addr.Zip} {
		if s != "" {
			cityLine = append(cityLine, s)
		}
	}
	if len(cityLine) > 0 {
		parts = append(parts, strings.Join(cityLine, ", "))
	}
	if addr.Country != "" {
		parts = append(parts, addr.Country)
	}
	for i := range parts {
		parts[i] = pad + parts[i]
	}
	return strings.Join(parts, "\n")
}

// renderObject recurses over a generic nested object, humanizing keys into
// display labels and dropping suppressed metadata and empty values.
func renderObject(entries []onepux.ObjectEntry, indent int, pad string) string {
	var blocks []string
	for _, e := range entries {
		if isSuppressedKey(e.Key) {
			continue
		}
		label := humanizeKey(e.Key)
		if label == "" {
			continue
		}
		rendered := RenderFieldValue(e.Value, indent+1)
		trimmed := strings.TrimSpace(rendered)
		if trimmed == "" || trimmed == emptyPlaceholder {
			continue
		}
		blocks = append(blocks, pad+label+":\n"+rendered)
	}
	if len(blocks) == 0 {
		return pad + emptyPlaceholder
	}
	return strings.Join(blocks, "\n")
}

// listItemString renders a list element inline after its bullet.
func listItemString(elem onepux.FieldValue) string {
	return strings.TrimSpace(RenderFieldValue(elem, 0))
}

// humanizeKey turns a raw JSON key into a display label: underscores
// become spaces, "Address"/"address" substrings are stripped, and the
// result is title-cased and trimmed.
func humanizeKey(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	s = strings.ReplaceAll(s, "Address", "")
	s = strings.ReplaceAll(s, "address", "")
	return strings.TrimSpace(titleCase(s))
}

// titleCase uppercases the first letter of every word and lowercases the
// rest, preserving non-letter characters and spacing.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
