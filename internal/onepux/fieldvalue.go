package onepux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldValueKind identifies which variant of the polymorphic field-value
// encoding a FieldValue holds.
type FieldValueKind int

const (
	// KindAbsent is a missing or null value.
	KindAbsent FieldValueKind = iota
	// KindScalar is a plain string, number, or boolean, including the
	// unwrapped payload of an unrecognized single-key wrapper.
	KindScalar
	// KindConcealed is a hidden value (password, PIN, CVV).
	KindConcealed
	// KindString is an explicit string wrapper.
	KindString
	// KindDate is a date in epoch seconds.
	KindDate
	// KindMonthYear is a packed YYYYMM month/year value.
	KindMonthYear
	// KindURL is a URL wrapper.
	KindURL
	// KindEmail is an email wrapper, possibly with a structured payload.
	KindEmail
	// KindPhone is a phone number wrapper.
	KindPhone
	// KindAddress is a structured postal address.
	KindAddress
	// KindTOTP is a TOTP secret or otpauth:// URI.
	KindTOTP
	// KindFile is a reference to an attachment inside the archive.
	KindFile
	// KindCreditCardNumber is a credit card number wrapper.
	KindCreditCardNumber
	// KindCreditCardType is a credit card brand wrapper.
	KindCreditCardType
	// KindGender is a gender wrapper.
	KindGender
	// KindMenu is a menu-selection wrapper.
	KindMenu
	// KindReference is a reference to another item by id.
	KindReference
	// KindObject is a nested object without a recognized wrapper key.
	KindObject
	// KindList is an array value.
	KindList
)

// FieldValue is the tagged union over the 1Password field-value encoding.
// Exactly one recognized wrapper key determines the kind; unrecognized
// shapes fall back to KindScalar, KindObject, or KindList.
type FieldValue struct {
	Kind FieldValueKind

	// Scalar carries the payload for every single-string kind and the raw
	// fallback text for dates that fail numeric conversion.
	Scalar string

	// DateSeconds is set when Kind is KindDate and DateValid is true.
	DateSeconds int64
	DateValid   bool

	// Address is set when Kind is KindAddress and the payload was
	// structured; otherwise Scalar holds the raw payload.
	Address *AddressValue

	// File is set when Kind is KindFile.
	File *FileValue

	// Object holds the entries of a generic nested object in document
	// order. Order is preserved so rendering is deterministic.
	Object []ObjectEntry

	// List holds the elements of an array value.
	List []FieldValue
}

// AddressValue is the structured payload of an address wrapper. Sub-fields
// beyond these five are dropped, matching the narrow rendering of the
// export format.
type AddressValue struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// FileValue is the payload of a file wrapper: an attachment reference.
type FileValue struct {
	FileName   string `json:"fileName"`
	DocumentID string `json:"documentId"`
}

// ObjectEntry is one key/value pair of a generic nested object.
type ObjectEntry struct {
	Key   string
	Value FieldValue
}

// wrapperKinds lists the recognized wrapper keys in priority order; the
// first key present in the object wins.
var wrapperKinds = []struct {
	key  string
	kind FieldValueKind
}{
	{"concealed", KindConcealed},
	{"string", KindString},
	{"date", KindDate},
	{"monthYear", KindMonthYear},
	{"url", KindURL},
	{"email", KindEmail},
	{"phone", KindPhone},
	{"address", KindAddress},
	{"totp", KindTOTP},
	{"file", KindFile},
	{"creditCardNumber", KindCreditCardNumber},
	{"creditCardType", KindCreditCardType},
	{"gender", KindGender},
	{"menu", KindMenu},
	{"reference", KindReference},
}

// UnmarshalJSON decodes the polymorphic field-value encoding into the
// tagged union.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	*v = FieldValue{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		v.Kind = KindAbsent
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []FieldValue
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		v.Kind = KindList
		v.List = list
		return nil
	case '{':
		entries, err := decodeOrderedObject(trimmed)
		if err != nil {
			return err
		}
		return v.fromObject(entries)
	default:
		s, ok := decodeScalar(trimmed)
		if !ok {
			return fmt.Errorf("unsupported field value: %s", trimmed)
		}
		v.Kind = KindScalar
		v.Scalar = s
		return nil
	}
}

// fromObject resolves an object payload against the recognized wrapper
// keys, then the single-key scalar unwrap, then the generic object arm.
func (v *FieldValue) fromObject(entries []rawEntry) error {
	byKey := make(map[string]json.RawMessage, len(entries))
	for _, e := range entries {
		byKey[e.key] = e.val
	}

	for _, w := range wrapperKinds {
		payload, ok := byKey[w.key]
		if !ok {
			continue
		}
		v.Kind = w.kind
		switch w.kind {
		case KindDate:
			if sec, ok := payloadInt64(payload); ok {
				v.DateSeconds = sec
				v.DateValid = true
			} else {
				v.Scalar = payloadString(payload)
			}
		case KindEmail:
			v.Scalar = emailAddress(payload)
		case KindAddress:
			var addr AddressValue
			if err := json.Unmarshal(payload, &addr); err == nil && bytes.HasPrefix(bytes.TrimSpace(payload), []byte("{")) {
				v.Address = &addr
			} else {
				v.Scalar = payloadString(payload)
			}
		case KindFile:
			var file FileValue
			if err := json.Unmarshal(payload, &file); err != nil {
				return fmt.Errorf("file wrapper: %w", err)
			}
			v.File = &file
		default:
			v.Scalar = payloadString(payload)
		}
		return nil
	}

	// Unknown single-key wrapper around a plain scalar: unwrap directly.
	if len(entries) == 1 {
		if s, ok := decodeScalar(bytes.TrimSpace(entries[0].val)); ok {
			v.Kind = KindScalar
			v.Scalar = s
			return nil
		}
	}

	obj := make([]ObjectEntry, 0, len(entries))
	for _, e := range entries {
		var fv FieldValue
		if err := json.Unmarshal(e.val, &fv); err != nil {
			return err
		}
		obj = append(obj, ObjectEntry{Key: e.key, Value: fv})
	}
	v.Kind = KindObject
	v.Object = obj
	return nil
}

type rawEntry struct {
	key string
	val json.RawMessage
}

// decodeOrderedObject parses a JSON object keeping its keys in document
// order, which encoding/json maps discard.
func decodeOrderedObject(data []byte) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var entries []rawEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		entries = append(entries, rawEntry{key: key, val: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// decodeScalar decodes a JSON string, number, or boolean to its text form.
func decodeScalar(data []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return "", false
	}
	return scalarString(raw)
}

func scalarString(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// payloadString returns the scalar text of a wrapper payload, or its
// compact JSON when the payload is not a scalar.
func payloadString(payload json.RawMessage) string {
	if s, ok := decodeScalar(bytes.TrimSpace(payload)); ok {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		return string(payload)
	}
	return compact.String()
}

func payloadInt64(payload json.RawMessage) (int64, bool) {
	s, ok := decodeScalar(bytes.TrimSpace(payload))
	if !ok {
		return 0, false
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return sec, true
}

// emailAddress resolves an email payload, which is either a bare string or
// a structured object carrying the address under one of two spellings.
func emailAddress(payload json.RawMessage) string {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var structured struct {
			Snake string `json:"email_address"`
			Camel string `json:"emailAddress"`
		}
		if err := json.Unmarshal(trimmed, &structured); err == nil {
			if structured.Snake != "" {
				return structured.Snake
			}
			return structured.Camel
		}
	}
	return payloadString(payload)
}
