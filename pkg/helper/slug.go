package helper

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize turns a human label into the machine name stored records are keyed
// by: lowercase, accents folded to their base letter, any run of characters
// outside [a-z0-9] collapsed to a single underscore, leading and trailing
// underscores trimmed. Idempotent, so a value that already is a machine name
// passes through unchanged.
func Normalize(label string) string {
	return fold(label, '_')
}

// FieldName is Normalize with the placeholder fallback for labels that fold
// to nothing (empty or fully symbolic). Position is the 1-based index of the
// field within its table, so fallbacks never collide with each other.
func FieldName(label string, position int) string {
	name := Normalize(label)
	if name == "" {
		return fmt.Sprintf("field_%d", position)
	}

	return name
}

// ModuleSlug builds the routing slug for a new module: hyphen-separated fold
// of the name plus a random 4-digit suffix for uniqueness.
func ModuleSlug(name string) string {
	base := fold(name, '-')
	if base == "" {
		base = "modulo"
	}

	return fmt.Sprintf("%s-%d", base, randomDigits(4))
}

func fold(s string, sep rune) string {
	s = stripDiacritics(strings.ToLower(s))

	var (
		b       strings.Builder
		pending bool
	)

	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteRune(sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	return b.String()
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)

	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out = append(out, r)
	}

	return string(out)
}

func randomDigits(digitNumber int) int64 {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	min := int64(1)
	for i := 1; i < digitNumber; i++ {
		min *= 10
	}

	return min + r.Int63n(min*9)
}
