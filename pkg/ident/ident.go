// Package ident generates document/item identifiers and URL-safe slugs.
package ident

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength matches the length limit on resume names and slugs.
const MaxSlugLength = 64

// NewID returns a fresh opaque identifier. Callers generate item ids
// locally before submitting them, the store never assigns one.
func NewID() string {
	return uuid.NewString()
}

// Slugify folds s to lower-case ASCII and joins every run of other
// characters with a single '-'. The result only contains [a-z0-9-] and
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if len(out) > MaxSlugLength {
		out = strings.TrimRight(out[:MaxSlugLength], "-")
	}
	return out
}

var (
	adjectives = []string{
		"Agile", "Bold", "Bright", "Calm", "Clever", "Crisp", "Daring", "Eager", "Fancy", "Gentle",
		"Golden", "Happy", "Honest", "Lively", "Lucky", "Mellow", "Modern", "Noble", "Quiet", "Rapid",
		"Sharp", "Silent", "Steady", "Swift", "Vivid", "Warm", "Wise", "Witty", "Young", "Zesty",
	}
	nouns = []string{
		"Badger", "Beacon", "Canyon", "Comet", "Falcon", "Forest", "Harbor", "Heron", "Island", "Lantern",
		"Maple", "Meadow", "Nebula", "Otter", "Panda", "Pioneer", "Prairie", "Raven", "River", "Summit",
		"Tiger", "Valley", "Voyager", "Willow", "Zephyr",
	}
)

// RandomName returns a human-friendly display name such as "Calm Swift
// Falcon", used when a document is created without a name.
func RandomName() string {
	a := adjectives[rand.Intn(len(adjectives))]
	b := adjectives[rand.Intn(len(adjectives))]
	for b == a {
		b = adjectives[rand.Intn(len(adjectives))]
	}
	return a + " " + b + " " + nouns[rand.Intn(len(nouns))]
}
