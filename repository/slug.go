package repository

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases s, folds accented letters to ASCII and replaces every run of
// non-alphanumeric characters with a single hyphen. Uniqueness is not enforced.
func Slugify(s string) string {
	// transformers carry state; build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var sb strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return sb.String()
}

// reservedSlugs are path segments the API mounts under each resource; a record
// slug equal to one would never reach the public detail route.
var reservedSlugs = map[string]bool{"admin": true}

func recordSlug(title string) string {
	slug := Slugify(title)
	if reservedSlugs[slug] {
		slug += "-1"
	}
	return slug
}
