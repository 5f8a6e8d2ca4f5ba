package collector

import (
	"fmt"
	"go-postdate/internal/candidate"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Article holds the candidates found in one article of a saved page.
// SpanText joins the text of every span, for engagement counts.
type Article struct {
	Index      int
	Candidates []candidate.Candidate
	SpanText   string
}

// FromHTML reads a saved page and collects candidates from every element
// matching candidateSelector inside each articleSelector match. Attribute
// and text order per element is the same as FromElements.
func FromHTML(r io.Reader, articleSelector, candidateSelector string) ([]Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var articles []Article
	doc.Find(articleSelector).Each(func(i int, s *goquery.Selection) {
		spans := s.Find("span").Map(func(_ int, span *goquery.Selection) string {
			return strings.TrimSpace(span.Text())
		})
		articles = append(articles, Article{
			Index:      i,
			Candidates: fromSelection(s.Find(candidateSelector)),
			SpanText:   strings.Join(spans, "\n"),
		})
	})
	return articles, nil
}

func fromSelection(sel *goquery.Selection) []candidate.Candidate {
	var candidates []candidate.Candidate

	sel.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		for _, attr := range attributeSources {
			if value, ok := el.Attr(attr.name); ok {
				if value = strings.TrimSpace(value); value != "" {
					candidates = append(candidates, candidate.Candidate{Provenance: attr.provenance, Value: value})
				}
			}
		}
		if text := strings.TrimSpace(el.Text()); text != "" {
			candidates = append(candidates, candidate.Candidate{Provenance: candidate.VisibleText, Value: text})
		}
		return len(candidates) < MaxCandidates
	})

	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	return candidates
}
