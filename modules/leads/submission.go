package leads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmrmedia/obsidian-landing/pkg/sanitizer"
)

const (
	maxFreeTextLen = 2000
	maxValueLen    = 256
)

// Submission is a lead record: field name to value.
// Keys starting with "_" are control fields and never reach a destination.
type Submission map[string]string

// UnmarshalJSON accepts any JSON object. Strings are kept verbatim, null
// becomes "", nested objects and arrays are kept as compact JSON text,
// numbers and booleans keep their JSON text.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return fmt.Errorf("%w: expected a JSON object", ErrInvalidSubmission)
	}

	out := make(Submission, len(raw))
	for key, value := range raw {
		v, err := scalar(value)
		if err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrInvalidSubmission, key, err)
		}
		out[key] = v
	}
	*s = out
	return nil
}

func scalar(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case 'n':
		return "", nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	return string(raw), nil
}

// Get returns the value for key.
func (s Submission) Get(key string) string {
	return s[key]
}

// Clean returns a sanitized copy of s without control fields.
// Free-text fields of form keep line breaks, everything else is folded
// to a single line.
func (s Submission) Clean(form Form) Submission {
	out := make(Submission, len(s))
	for key, value := range s {
		key = strings.TrimSpace(key)
		if key == "" || isControlKey(key) {
			continue
		}

		field, declared := form.Field(key)
		switch {
		case declared && field.Type == FieldTextarea:
			value = sanitizer.Multiline(sanitizer.UserInput(value, maxFreeTextLen))
		case declared && field.Type == FieldEmail:
			value = sanitizer.NormalizeEmail(sanitizer.UserInput(value, maxValueLen))
		default:
			value = sanitizer.SingleLine(sanitizer.UserInput(value, maxValueLen))
		}
		out[key] = value
	}
	return out
}

// Control returns the value of the control field "_"+name.
func (s Submission) Control(name string) string {
	return strings.TrimSpace(s["_"+name])
}

func isControlKey(key string) bool {
	return strings.HasPrefix(key, "_")
}

// Payload is a JSON submission together with the exact bytes it was
// decoded from.
type Payload struct {
	Raw    json.RawMessage
	Fields Submission
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	var fields Submission
	if err := fields.UnmarshalJSON(data); err != nil {
		return err
	}
	p.Raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	p.Fields = fields
	return nil
}
