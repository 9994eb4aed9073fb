package slug

import (
	"regexp"
	"strings"

	gosimple "github.com/gosimple/slug"
)

// MaxLength is the width of every slug column.
const MaxLength = 100

var dashRuns = regexp.MustCompile(`-{2,}`)

// Make derives a lower-cased, URL-safe token from text. Letters are
// transliterated to ASCII and '&' and '@' are spelled out as "and" and "at".
// Any other run of characters outside [a-z0-9] becomes a single '-'. The
// result never exceeds MaxLength bytes.
func Make(text string) string {
	s := strings.ReplaceAll(gosimple.Make(text), "_", "-")
	s = dashRuns.ReplaceAllString(s, "-")
	if len(s) > MaxLength {
		s = s[:MaxLength]
	}
	return strings.Trim(s, "-")
}
