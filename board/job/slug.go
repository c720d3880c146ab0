package job

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const slugIDLength = 10

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9_-]+`)
)

// ToSlug lowercases title, turns whitespace runs into hyphens and drops every
// character that is not a letter, digit, underscore or hyphen
func ToSlug(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}

// NewSlug appends a random URL-safe id to the title slug.
// Collisions are left to the store's unique constraint.
func NewSlug(title string) string {
	return ToSlug(title) + "-" + randomID()
}

// randomID encodes eight fully random bytes of a v4 uuid. Byte 6 carries the
// version nibble and byte 8 the variant bits, so both are skipped.
func randomID() string {
	id := uuid.New()
	b := []byte{id[0], id[1], id[2], id[3], id[4], id[5], id[7], id[9]}
	return base64.RawURLEncoding.EncodeToString(b)[:slugIDLength]
}
