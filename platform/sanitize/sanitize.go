// Package sanitize cleans free text supplied by API callers before it is
// forwarded to upstream services.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup, decodes entities and strips again so that
// encoded tags cannot survive.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = html.UnescapeString(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text strips markup and collapses runs of whitespace into single spaces.
func Text(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}
