// Package collector reads date candidates out of a rendered post page.
// Which elements to look at is decided by the caller's locator.
package collector

import (
	"fmt"
	"go-postdate/internal/candidate"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// MaxCandidates caps how many strings are collected per post.
const MaxCandidates = 80

// Element is the part of playwright.Locator the collector reads.
type Element interface {
	GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error)
	TextContent(options ...playwright.LocatorTextContentOptions) (string, error)
}

// attribute name -> provenance, in the order they are read per element
var attributeSources = []struct {
	name       string
	provenance candidate.Provenance
}{
	{"datetime", candidate.StructuredAttribute},
	{"data-utime", candidate.StructuredAttribute},
	{"title", candidate.TooltipTitle},
	{"aria-label", candidate.AccessibilityLabel},
}

const readTimeoutMs = 1000

// Collect reads candidates from every element matched by scope.
func Collect(scope playwright.Locator) ([]candidate.Candidate, error) {
	locators, err := scope.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate elements: %w", err)
	}
	elements := make([]Element, len(locators))
	for i, l := range locators {
		elements[i] = l
	}
	return FromElements(elements), nil
}

// FromElements reads datetime, data-utime, title, aria-label and text content from each
// element. Empty values and unreadable elements are skipped.
func FromElements(elements []Element) []candidate.Candidate {
	var candidates []candidate.Candidate

	for _, el := range elements {
		for _, attr := range attributeSources {
			value, err := el.GetAttribute(attr.name, playwright.LocatorGetAttributeOptions{
				Timeout: playwright.Float(readTimeoutMs),
			})
			if err != nil {
				continue
			}
			if value = strings.TrimSpace(value); value != "" {
				candidates = append(candidates, candidate.Candidate{Provenance: attr.provenance, Value: value})
			}
		}

		text, err := el.TextContent(playwright.LocatorTextContentOptions{
			Timeout: playwright.Float(readTimeoutMs),
		})
		if err == nil {
			if text = strings.TrimSpace(text); text != "" {
				candidates = append(candidates, candidate.Candidate{Provenance: candidate.VisibleText, Value: text})
			}
		}

		if len(candidates) >= MaxCandidates {
			return candidates[:MaxCandidates]
		}
	}
	return candidates
}
