// Package pattern compiles plain-text rule entries (keywords, channel names,
// section titles) into case-insensitive matchers that accept either script
// variant of Chinese text.
package pattern

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ExactPrefix marks an entry that must match the whole text instead of a substring.
const ExactPrefix = "="

// Matcher is a compiled rule entry.
type Matcher interface {
	Match(text string) bool
	Source() string
}

// Pattern is a regular-expression matcher produced by Compile.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

func (p *Pattern) Match(text string) bool {
	return p.re.MatchString(Normalize(text))
}

func (p *Pattern) Source() string {
	return p.source
}

// Literal is the plain substring matcher used when script conversion is off.
type Literal struct {
	source string
	exact  bool
	folded string
}

func (l *Literal) Match(text string) bool {
	folded := fold(Normalize(text))
	if l.exact {
		return folded == l.folded
	}
	return strings.Contains(folded, l.folded)
}

func (l *Literal) Source() string {
	return l.source
}

// Normalize applies compatibility normalisation (full-width latin, ligatures)
// and trims surrounding space.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// split strips the exact-match prefix and normalises the entry body.
func split(entry string) (string, bool) {
	body := strings.TrimSpace(entry)
	exact := strings.HasPrefix(body, ExactPrefix)
	if exact {
		body = strings.TrimSpace(strings.TrimPrefix(body, ExactPrefix))
	}
	return Normalize(body), exact
}

// Expression escapes every metacharacter of text and replaces each character
// with a known script counterpart by a class containing both spellings.
func Expression(text string, variants Variants) string {
	var b strings.Builder
	for _, r := range text {
		alts := variants.Lookup(r)
		if len(alts) == 0 {
			b.WriteString(regexp.QuoteMeta(string(r)))
			continue
		}
		b.WriteByte('[')
		b.WriteRune(r)
		for _, alt := range alts {
			b.WriteRune(alt)
		}
		b.WriteByte(']')
	}
	return b.String()
}

// Compile turns one rule entry into a Pattern.
func Compile(entry string, variants Variants) (*Pattern, error) {
	if !utf8.ValidString(entry) {
		return nil, fmt.Errorf("pattern %q is not valid UTF-8", entry)
	}
	body, exact := split(entry)
	if body == "" {
		return nil, fmt.Errorf("empty pattern %q", entry)
	}

	expr := Expression(body, variants)
	if exact {
		expr = "^(?:" + expr + ")$"
	}

	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %q: %w", entry, err)
	}

	return &Pattern{source: entry, re: re}, nil
}

// CompileList compiles every entry, dropping the ones that fail.
func CompileList(entries []string, variants Variants) []Matcher {
	matchers := make([]Matcher, 0, len(entries))
	for _, entry := range entries {
		p, err := Compile(entry, variants)
		if err != nil {
			slog.Debug("Pattern dropped", "entry", entry, "error", err)
			continue
		}
		matchers = append(matchers, p)
	}
	return matchers
}

// LiteralList builds plain substring matchers, dropping empty entries.
func LiteralList(entries []string) []Matcher {
	matchers := make([]Matcher, 0, len(entries))
	for _, entry := range entries {
		body, exact := split(entry)
		if body == "" || !utf8.ValidString(body) {
			continue
		}
		matchers = append(matchers, &Literal{source: entry, exact: exact, folded: fold(body)})
	}
	return matchers
}

// First returns the first matcher that accepts text. Empty text and empty
// lists never match.
func First(matchers []Matcher, text string) (Matcher, bool) {
	if text == "" {
		return nil, false
	}
	for _, m := range matchers {
		if m.Match(text) {
			return m, true
		}
	}
	return nil, false
}
