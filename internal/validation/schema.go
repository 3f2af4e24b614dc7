// Package validation performs schema-level checks on raw submission payloads.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Format identifies an additional syntax constraint beyond type and length.
type Format int

const (
	FormatNone Format = iota
	FormatEmail
)

// Rule describes the constraints for a single payload field.
type Rule struct {
	Required bool
	MinLen   int
	MaxLen   int
	Format   Format
}

// Schema maps field names to their rules. Fields present in the payload but
// absent from the schema are ignored, not rejected.
type Schema map[string]Rule

// ContactSchema validates contact-form submissions.
var ContactSchema = Schema{
	"name":          {Required: true, MinLen: 2, MaxLen: 120},
	"email":         {Required: true, Format: FormatEmail},
	"message":       {Required: true, MinLen: 5, MaxLen: 5000},
	"captcha_token": {},
}

// CommentSchema validates project-comment submissions.
var CommentSchema = Schema{
	"name":          {Required: true, MinLen: 2, MaxLen: 120},
	"email":         {Required: true, Format: FormatEmail},
	"content":       {Required: true, MinLen: 1, MaxLen: 2000},
	"captcha_token": {},
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	wsRegex    = regexp.MustCompile(`\s+`)
)

// Validate checks payload against schema. On success it returns the string
// values keyed by field name; on failure it returns nil values and a map of
// field name to human-readable violation messages.
//
// Length bounds are checked on the raw value, before any whitespace
// normalization, so a whitespace-only string of acceptable length is caught
// by a separate emptiness check here rather than at the length stage.
func Validate(payload map[string]any, schema Schema) (map[string]string, map[string][]string) {
	values := make(map[string]string, len(schema))
	violations := make(map[string][]string)

	for field, rule := range schema {
		raw, present := payload[field]
		if !present || raw == nil {
			if rule.Required {
				violations[field] = append(violations[field], "Missing data for required field.")
			}
			continue
		}

		value, ok := raw.(string)
		if !ok {
			violations[field] = append(violations[field], "Not a valid string.")
			continue
		}

		length := utf8.RuneCountInString(value)
		if rule.MinLen > 0 && length < rule.MinLen {
			violations[field] = append(violations[field],
				fmt.Sprintf("Length must be between %d and %d.", rule.MinLen, rule.MaxLen))
		} else if rule.MaxLen > 0 && length > rule.MaxLen {
			violations[field] = append(violations[field],
				fmt.Sprintf("Length must be between %d and %d.", rule.MinLen, rule.MaxLen))
		}

		if rule.Required && strings.TrimSpace(wsRegex.ReplaceAllString(value, " ")) == "" {
			violations[field] = append(violations[field], "Field cannot be empty.")
		}

		if rule.Format == FormatEmail && !emailRegex.MatchString(strings.TrimSpace(value)) {
			violations[field] = append(violations[field], "Not a valid email address.")
		}

		values[field] = value
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return values, nil
}
