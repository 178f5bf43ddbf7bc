package tenants

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowercases the name and collapses every non-alphanumeric run into a
// single hyphen. Names with no usable characters get the fallback, so the
// caller names the entity being slugged.
func Slugify(name, fallback string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = fallback
	}
	return slug
}

// SlugCandidate returns the base slug for attempt 0 and "<slug>-N" afterwards.
func SlugCandidate(base string, attempt int) string {
	if attempt <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}
