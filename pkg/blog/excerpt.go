package blog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultExcerptLength is the excerpt size used when none is configured.
const DefaultExcerptLength = 150

const ellipsis = "..."

// residualTag catches tag-like text produced by unescaping entities such as
// &lt;b&gt;. A "<" must open a name, a closing slash, "!" or "?" to count, so
// comparisons like "x < 5 and y > 3" survive.
var residualTag = regexp.MustCompile(`<[a-zA-Z/!?][^<>]*>`)

// StripTags returns the plain text of rich content with whitespace collapsed.
// Script and style bodies are dropped; block level elements separate words.
func StripTags(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return strings.Join(strings.Fields(content), " ")
	}

	z := html.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			text := residualTag.ReplaceAllString(b.String(), " ")
			return strings.Join(strings.Fields(text), " ")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Script || a == atom.Style {
				skip++
			} else if separatesWords(a) {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			} else if separatesWords(a) {
				b.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func separatesWords(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Tr, atom.Td, atom.Th,
		atom.Section, atom.Article, atom.Header, atom.Footer, atom.Hr, atom.Img, atom.Figcaption:
		return true
	}
	return false
}

// DeriveExcerpt strips markup from content and truncates it to maxLength
// runes at a word boundary, appending "..." when truncated. A non-positive
// maxLength selects DefaultExcerptLength.
func DeriveExcerpt(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	text := StripTags(content)
	r := []rune(text)
	if len(r) <= maxLength {
		return text
	}

	cut := r[:maxLength]
	if !unicode.IsSpace(r[maxLength]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}
	trimmed := strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	if trimmed == "" {
		trimmed = strings.TrimRightFunc(string(cut), unicode.IsSpace)
	}
	return trimmed + ellipsis
}
