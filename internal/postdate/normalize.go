package postdate

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeText folds scraped text into a single-spaced, NFKC-normalized form.
// NFKC turns NBSP and the narrow NBSP Facebook puts before "PM" into plain
// spaces and full-width digits into ASCII. Zero-width format runes are dropped.
func normalizeText(str string) string {
	//chain is stateful, build one per call
	t := transform.Chain(
		norm.NFKC,
		runes.Remove(runes.In(unicode.Cf)),
		runes.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return ' '
			}
			return r
		}),
	)
	result, _, err := transform.String(t, str)
	if err != nil {
		result = str
	}
	return strings.Join(strings.Fields(result), " ")
}
