package engagement

import (
	"regexp"
	"strconv"
	"strings"
)

// Counts holds the engagement numbers shown under a post. A nil field means
// the count was not found on the page.
type Counts struct {
	Reactions *int `json:"reactions"`
	Comments  *int `json:"comments"`
	Shares    *int `json:"shares"`
}

var (
	reactionsRegex = regexp.MustCompile(`(?i)([\d][\d,.]*)\s*([km])?\s*(?:reactions?|likes?)\b`)
	commentsRegex  = regexp.MustCompile(`(?i)([\d][\d,.]*)\s*([km])?\s*comments?\b`)
	sharesRegex    = regexp.MustCompile(`(?i)([\d][\d,.]*)\s*([km])?\s*shares?\b`)
)

// Parse scans the joined span text of a post for engagement counts.
func Parse(text string) Counts {
	return Counts{
		Reactions: find(reactionsRegex, text),
		Comments:  find(commentsRegex, text),
		Shares:    find(sharesRegex, text),
	}
}

func find(re *regexp.Regexp, text string) *int {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	n, ok := ParseCount(match[1] + match[2])
	if !ok {
		return nil
	}
	return &n
}

// ParseCount reads "1,234", "1.2K" or "3M". Without a suffix, commas and
// dots are thousands separators.
func ParseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'k', 'K':
		multiplier = 1_000
		s = s[:len(s)-1]
	case 'm', 'M':
		multiplier = 1_000_000
		s = s[:len(s)-1]
	}

	if multiplier == 1 {
		n, err := strconv.Atoi(strings.NewReplacer(",", "", ".", "").Replace(s))
		if err != nil {
			return 0, false
		}
		return n, true
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return int(f*multiplier + 0.5), true
}
