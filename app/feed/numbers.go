package feed

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// CountMode selects how a count fragment is interpreted.
type CountMode int

const (
	CountViews CountMode = iota
	CountViewers
)

var (
	numberToken = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	digitGroups = regexp.MustCompile(`(\d)[ \x{00a0}\x{202f}\x{2009}](\d{3})`)
	integer     = regexp.MustCompile(`\d+`)
)

func normalizeText(s string) string {
	s = norm.NFKC.String(s)
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// IsRelativeTime reports whether text reads like "3 days ago" in any
// supported language.
func IsRelativeTime(text string) bool {
	text = normalizeText(text)
	if !agoPhrase.MatchString(text) {
		return false
	}
	if secondsPhrase.MatchString(text) {
		return true
	}
	for _, u := range timeUnits {
		if u.words.MatchString(text) {
			return true
		}
	}
	return false
}

// ParseCount converts a localized abbreviated count such as "1.2K views",
// "3.4万次观看" or "1,2 mil visualizaciones" to an integer. The result is
// floored. ok is false when no number is present, or when a view count
// turns out to be a relative-time phrase.
func ParseCount(text string, mode CountMode, loc *Locale) (int64, bool) {
	if loc == nil {
		loc = &anyLocale
	}
	text = normalizeText(text)
	if text == "" {
		return 0, false
	}
	if mode == CountViews && IsRelativeTime(text) {
		return 0, false
	}

	for digitGroups.MatchString(text) {
		text = digitGroups.ReplaceAllString(text, "$1$2")
	}

	span := numberToken.FindStringIndex(text)
	if span == nil {
		return 0, false
	}
	token := text[span[0]:span[1]]
	rest := strings.TrimSpace(text[span[1]:])
	factor, hasUnit := loc.unitFactor(rest)

	value, ok := parseMantissa(token, hasUnit)
	if !ok {
		return 0, false
	}
	// The epsilon absorbs binary rounding such as 1.7 * 1e7 = 16999999.99...
	return int64(math.Floor(value*factor + 1e-6)), true
}

// parseMantissa resolves "," and "." as either thousands separators or a
// decimal mark. A comma followed by exactly three digits is a separator; any
// other comma is a decimal mark.
func parseMantissa(token string, hasUnit bool) (float64, bool) {
	commas := strings.Count(token, ",")
	dots := strings.Count(token, ".")

	switch {
	case commas > 0 && dots > 0:
		// The later mark is the decimal mark.
		if strings.LastIndex(token, ",") > strings.LastIndex(token, ".") {
			token = strings.ReplaceAll(token, ".", "")
			token = strings.Replace(token, ",", ".", 1)
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case commas > 0:
		token = resolveMark(token, ",", hasUnit)
	case dots > 0:
		token = resolveMark(token, ".", hasUnit)
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func resolveMark(token, mark string, hasUnit bool) string {
	parts := strings.Split(token, mark)
	grouped := true
	for _, p := range parts[1:] {
		if len(p) != 3 {
			grouped = false
			break
		}
	}
	// "1.234" with a unit is still a decimal ("1.234K" is rare but decimal).
	if grouped && (len(parts) > 2 || mark == "," || !hasUnit) {
		return strings.Join(parts, "")
	}
	if len(parts) == 2 {
		return parts[0] + "." + parts[1]
	}
	return strings.Join(parts, "")
}

// unitFactor matches the unit suffix at the start of rest. A letter suffix the
// locale does not know is retried against every locale, so "1K" on a Korean
// page still reads as a thousand.
func (l *Locale) unitFactor(rest string) (float64, bool) {
	if rest == "" {
		return 1, false
	}
	lower := strings.ToLower(rest)
	if factor, ok := l.match(lower); ok {
		return factor, true
	}
	if l == &anyLocale {
		return 1, false
	}
	if r, _ := utf8.DecodeRuneInString(lower); !unicode.IsLetter(r) {
		return 1, false
	}
	return anyLocale.match(lower)
}

func (l *Locale) match(lower string) (float64, bool) {
	for _, u := range l.units {
		if !strings.HasPrefix(lower, u.suffix) {
			continue
		}
		if isLatinSuffix(u.suffix) {
			next, _ := utf8.DecodeRuneInString(lower[len(u.suffix):])
			if next != utf8.RuneError && unicode.IsLetter(next) {
				continue
			}
		}
		return u.factor, true
	}
	return 1, false
}

func isLatinSuffix(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.In(r, unicode.Latin, unicode.Cyrillic, unicode.Devanagari)
}

// ParseRelativeTime converts phrases like "3 weeks ago" or "2天前" to
// minutes. Seconds-granularity phrases yield zero.
func ParseRelativeTime(text string) (int64, bool) {
	text = normalizeText(text)
	if text == "" {
		return 0, false
	}
	if secondsPhrase.MatchString(text) {
		return 0, true
	}
	n := integer.FindString(text)
	if n == "" {
		return 0, false
	}
	count, err := strconv.ParseInt(n, 10, 64)
	if err != nil {
		return 0, false
	}
	for _, u := range timeUnits {
		if u.words.MatchString(text) {
			return count * u.minutes, true
		}
	}
	return 0, false
}

// ParseDuration converts "S", "M:SS" or "H:MM:SS" to seconds. Any other
// shape is unknown.
func ParseDuration(text string) (int64, bool) {
	text = normalizeText(text)
	if text == "" {
		return 0, false
	}
	fields := strings.Split(text, ":")
	if len(fields) > 3 {
		return 0, false
	}
	var total int64
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return 0, false
		}
		for _, r := range f {
			if r < '0' || r > '9' {
				return 0, false
			}
		}
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return 0, false
		}
		total = total*60 + v
	}
	return total, true
}
