package export

import (
	"testing"
	"time"

	"github.com/nvinuesa/puxporter/internal/onepux"
)

func TestRenderFieldValueScalars(t *testing.T) {
	tests := []struct {
		name string
		v    onepux.FieldValue
		want string
	}{
		{"Absent", onepux.FieldValue{Kind: onepux.KindAbsent}, "(empty)"},
		{"Plain scalar", onepux.FieldValue{Kind: onepux.KindScalar, Scalar: "hello"}, "hello"},
		{"Concealed renders raw", onepux.FieldValue{Kind: onepux.KindConcealed, Scalar: "s3cret"}, "s3cret"},
		{"URL", onepux.FieldValue{Kind: onepux.KindURL, Scalar: "https://example.com"}, "https://example.com"},
		{"TOTP secret", onepux.FieldValue{Kind: onepux.KindTOTP, Scalar: "JBSWY3DP"}, "JBSWY3DP"},
		{"Month-year packed", onepux.FieldValue{Kind: onepux.KindMonthYear, Scalar: "202612"}, "12/2026"},
		{"Month-year malformed kept raw", onepux.FieldValue{Kind: onepux.KindMonthYear, Scalar: "dec 26"}, "dec 26"},
		{"Date fallback text", onepux.FieldValue{Kind: onepux.KindDate, Scalar: "sometime"}, "sometime"},
		{"Reference", onepux.FieldValue{Kind: onepux.KindReference, Scalar: "uuid-1"}, "[Reference: uuid-1]"},
		{"Attachment", onepux.FieldValue{Kind: onepux.KindFile, File: &onepux.FileValue{FileName: "scan.pdf"}}, "[Attachment: scan.pdf]"},
		{"Attachment unnamed", onepux.FieldValue{Kind: onepux.KindFile, File: &onepux.FileValue{}}, "[Attachment: unknown]"},
		{"Empty list", onepux.FieldValue{Kind: onepux.KindList}, "(none)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderFieldValue(tt.v, 0); got != tt.want {
				t.Errorf("RenderFieldValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderFieldValueDate(t *testing.T) {
	// Build the epoch from a local-time date so the test holds in any
	// timezone.
	sec := time.Date(2024, 5, 17, 12, 0, 0, 0, time.Local).Unix()
	v := onepux.FieldValue{Kind: onepux.KindDate, DateSeconds: sec, DateValid: true}
	if got := RenderFieldValue(v, 0); got != "2024-05-17" {
		t.Errorf("RenderFieldValue(date) = %q, want 2024-05-17", got)
	}
}

func TestRenderFieldValueIndent(t *testing.T) {
	v := onepux.FieldValue{Kind: onepux.KindScalar, Scalar: "x"}
	if got := RenderFieldValue(v, 2); got != "    x" {
		t.Errorf("RenderFieldValue(indent=2) = %q, want %q", got, "    x")
	}
}

func TestRenderAddress(t *testing.T) {
	t.Run("Full address", func(t *testing.T) {
		v := onepux.FieldValue{Kind: onepux.KindAddress, Address: &onepux.AddressValue{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			Zip:     "62704",
			Country: "us",
		}}
		want := "1 Main St\nSpringfield, IL, 62704\nus"
		if got := RenderFieldValue(v, 0); got != want {
			t.Errorf("RenderFieldValue() = %q, want %q", got, want)
		}
	})

	t.Run("Partial address omits absent components", func(t *testing.T) {
		v := onepux.FieldValue{Kind: onepux.KindAddress, Address: &onepux.AddressValue{
			City: "Paris",
			Zip:  "75001",
		}}
		if got := RenderFieldValue(v, 0); got != "Paris, 75001" {
			t.Errorf("RenderFieldValue() = %q, want %q", got, "Paris, 75001")
		}
	})

	t.Run("Unstructured payload kept raw", func(t *testing.T) {
		v := onepux.FieldValue{Kind: onepux.KindAddress, Scalar: "somewhere"}
		if got := RenderFieldValue(v, 0); got != "somewhere" {
			t.Errorf("RenderFieldValue() = %q, want somewhere", got)
		}
	})
}

func TestRenderList(t *testing.T) {
	v := onepux.FieldValue{Kind: onepux.KindList, List: []onepux.FieldValue{
		{Kind: onepux.KindScalar, Scalar: "one"},
		{Kind: onepux.KindScalar, Scalar: "two"},
	}}
	want := "• one\n• two"
	if got := RenderFieldValue(v, 0); got != want {
		t.Errorf("RenderFieldValue() = %q, want %q", got, want)
	}
}

func TestRenderObject(t *testing.T) {
	t.Run("Labels and nesting", func(t *testing.T) {
		v := onepux.FieldValue{Kind: onepux.KindObject, Object: []onepux.ObjectEntry{
			{Key: "first_name", Value: onepux.FieldValue{Kind: onepux.KindScalar, Scalar: "Ada"}},
			{Key: "last_name", Value: onepux.FieldValue{Kind: onepux.KindScalar, Scalar: "Lovelace"}},
		}}
		want := "First Name:\n  Ada\nLast Name:\n  Lovelace"
		if got := RenderFieldValue(v, 0); got != want {
			t.Errorf("RenderFieldValue() = %q, want %q", got, want)
		}
	})

	t.Run("Provider metadata suppressed", func(t *testing.T) {
		v := onepux.FieldValue{Kind: onepux.KindObject, Object: []onepux.ObjectEntry{
			{Key: "provider", Value: onepux.FieldValue{Kind: onepux.KindScalar, Scalar: "gmail"}},
			{Key: "user", Value: onepux.FieldValue{Kind: onepux.KindScalar, Scalar: "ada"}},
		}}
		if got := RenderFieldValue(v, 0); got != "User:\n  ada" {
			t.Errorf("RenderFieldValue() = %q, want %q", got, "User:\n  ada")
		}
	})

	t.Run("Empty values dropped", func(t *testing.T) {
		v := onepux.FieldValue{Kind: onepux.KindObject, Object: []onepux.ObjectEntry{
			{Key: "blank", Value: onepux.FieldValue{Kind: onepux.KindAbsent}},
			{Key: "set", Value: onepux.FieldValue{Kind: onepux.KindScalar, Scalar: "yes"}},
		}}
		if got := RenderFieldValue(v, 0); got != "Set:\n  yes" {
			t.Errorf("RenderFieldValue() = %q, want %q", got, "Set:\n  yes")
		}
	})

	t.Run("All entries suppressed yields placeholder", func(t *testing.T) {
		v := onepux.FieldValue{Kind: onepux.KindObject, Object: []onepux.ObjectEntry{
			{Key: "provider", Value: onepux.FieldValue{Kind: onepux.KindScalar, Scalar: "x"}},
		}}
		if got := RenderFieldValue(v, 0); got != "(empty)" {
			t.Errorf("RenderFieldValue() = %q, want (empty)", got)
		}
	})
}

func TestHumanizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"first_name", "First Name"},
		{"billing_address", "Billing"},
		{"Address", ""},
		{"pin", "Pin"},
		{"wireless_security", "Wireless Security"},
		{"card CVV", "Card Cvv"},
	}
	for _, tt := range tests {
		if got := humanizeKey(tt.in); got != tt.want {
			t.Errorf("humanizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
