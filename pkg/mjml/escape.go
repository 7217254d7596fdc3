package mjml

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// htmlEscaper mirrors text-node serialization: only characters with markup
// meaning in text content are escaped, so plain text round-trips unchanged.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes a string for use as HTML text content.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// attributeEscaper mirrors quoted-attribute serialization.
var attributeEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
)

// EscapeAttribute escapes a string for use inside a double-quoted HTML
// attribute value.
func EscapeAttribute(s string) string {
	return attributeEscaper.Replace(s)
}

var (
	stripPolicy *bluemonday.Policy
	stripOnce   sync.Once
)

// StripHTML parses a markup string and returns its concatenated text content
// only. Entities present in the markup are resolved to their text form.
func StripHTML(s string) string {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// EscapeRegex escapes characters with special meaning in regular-expression
// syntax.
func EscapeRegex(s string) string {
	return regexp.QuoteMeta(s)
}
