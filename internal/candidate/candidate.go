// Package candidate ranks the raw date strings collected from a post page and
// picks the first one the loose date parser can resolve.
package candidate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provenance tells where a candidate string was found on the page.
type Provenance string

const (
	StructuredAttribute Provenance = "datetime"
	AccessibilityLabel  Provenance = "aria"
	TooltipTitle        Provenance = "title"
	VisibleText         Provenance = "text"
	RecognizedImageText Provenance = "ocr"
)

// Provenances lists every tag from most to least trustworthy.
var Provenances = []Provenance{
	StructuredAttribute,
	AccessibilityLabel,
	TooltipTitle,
	VisibleText,
	RecognizedImageText,
}

var aliases = map[string]Provenance{
	"structured-attribute":  StructuredAttribute,
	"accessibility-label":   AccessibilityLabel,
	"aria-label":            AccessibilityLabel,
	"tooltip-title":         TooltipTitle,
	"visible-text":          VisibleText,
	"recognized-image-text": RecognizedImageText,
}

// ParseProvenance accepts the short tags ("aria") and the long names
// ("accessibility-label"), case-insensitively.
func ParseProvenance(s string) (Provenance, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Provenances {
		if string(p) == s {
			return p, nil
		}
	}
	if p, ok := aliases[s]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown provenance %q", s)
}

// Rank orders provenances; lower wins. Unknown tags sort last.
func (p Provenance) Rank() int {
	for i, known := range Provenances {
		if p == known {
			return i
		}
	}
	return len(Provenances)
}

// Source is the label written to scraper output, e.g. "dom_aria".
func (p Provenance) Source() string {
	if p == RecognizedImageText {
		return "ocr"
	}
	return "dom_" + string(p)
}

type Candidate struct {
	Provenance Provenance `json:"provenance"`
	Value      string     `json:"value"`
}

// Result is the resolved timestamp handed back to the scraping layer.
type Result struct {
	Instant    string `json:"instant"`
	Raw        string `json:"rawMatchedString"`
	Provenance string `json:"provenanceTag"`

	// At is Instant as a time.Time, for callers that filter on it.
	At time.Time `json:"-"`
}

// Recognizer produces image-recognized text for the post header. It is only
// consulted when every DOM candidate failed.
type Recognizer interface {
	RecognizeText(ctx context.Context) (string, error)
}
