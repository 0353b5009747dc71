package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// safe for concurrent use once built
var policy = bluemonday.StrictPolicy()

// sanitize strips markup and returns plain text. bluemonday escapes the text it keeps,
// so entities are decoded back before the value is validated and stored.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
