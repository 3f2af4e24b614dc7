// Package sanitize strips markup from untrusted free-text before persistence.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every tag, attribute and URL scheme. Script and style
// element contents are discarded entirely, not unwrapped.
var strict = bluemonday.StrictPolicy()

var wsRegex = regexp.MustCompile(`\s+`)

// Text returns s with all markup removed, whitespace runs collapsed to
// single spaces, and leading/trailing whitespace trimmed. The result is
// plain text: entities introduced by the sanitizer are decoded back.
// Text is idempotent on already-clean input.
func Text(s string) string {
	cleaned := strict.Sanitize(s)
	cleaned = html.UnescapeString(cleaned)
	cleaned = wsRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
