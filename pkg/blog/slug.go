package blog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugProbes bounds the sequential suffix probe.
const maxSlugProbes = 10000

// MaxSlugLength matches the column width used by the postgres schema.
const MaxSlugLength = 255

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)


// SlugExistsFunc reports whether slug is already taken by an entity other
// than excludeID. uuid.Nil excludes nothing.
type SlugExistsFunc func(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

// Slugify normalizes text into a lowercase, hyphen separated ASCII token.
//
// Diacritics are stripped and other scripts are transliterated to ASCII
// ("Привет" becomes "privet"). "@" becomes the word "at", underscores act as
// separators, runs of whitespace and hyphens collapse into one hyphen, and
// every other character is dropped. The result may be empty.
func Slugify(text string) string {
	s := text
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = strings.ToLower(unidecode.Unidecode(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, "@", "-at-")

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingSep = true
		}
	}
	return b.String()
}

// ResolveSlug derives a base slug from text and appends -1, -2, ... until
// exists reports the candidate free. It returns ErrEmptySlug when text
// normalizes to nothing.
//
// The probe is best effort. The storage layer's unique index is the
// authoritative guard.
func ResolveSlug(ctx context.Context, text string, excludeID uuid.UUID, exists SlugExistsFunc) (string, error) {
	base := Slugify(text)
	if base == "" {
		return "", ErrEmptySlug
	}

	candidate := fitSlug(base, "")
	for i := 1; i <= maxSlugProbes; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fitSlug(base, fmt.Sprintf("-%d", i))
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugProbes)
}

// fitSlug joins base and suffix, shortening base so the result stays within
// MaxSlugLength. Slugs are ASCII, so bytes and characters coincide.
func fitSlug(base, suffix string) string {
	if room := MaxSlugLength - len(suffix); len(base) > room {
		base = strings.TrimRight(base[:room], "-")
	}
	return base + suffix
}

// resolveSlugWithFallback resolves from text and falls back to seed when text
// has no sluggable characters.
func resolveSlugWithFallback(ctx context.Context, text, seed string, excludeID uuid.UUID, exists SlugExistsFunc) (string, error) {
	slug, err := ResolveSlug(ctx, text, excludeID, exists)
	if err == ErrEmptySlug {
		return ResolveSlug(ctx, seed, excludeID, exists)
	}
	return slug, err
}

// ValidateSlug checks an explicitly supplied slug. Explicit slugs are taken
// verbatim, so they must already be in canonical form.
func ValidateSlug(slug string) error {
	if len(slug) > MaxSlugLength {
		return fmt.Errorf("may not be greater than %d characters", MaxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("may only contain lowercase letters, numbers and single hyphens")
	}
	return nil
}
