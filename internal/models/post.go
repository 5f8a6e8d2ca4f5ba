package models

import (
	"go-postdate/internal/candidate"
	"go-postdate/internal/engagement"
	"time"
)

// Post is one scraped post page. Timestamp is nil when no candidate resolved.
type Post struct {
	RunID      string            `json:"run_id"`
	URL        string            `json:"url"`
	Timestamp  *candidate.Result `json:"timestamp"`
	Candidates int               `json:"candidates"`
	Engagement engagement.Counts `json:"engagement"`
	ScrapedAt  time.Time         `json:"scraped_at"`
}

// Instant returns the resolved timestamp, or the zero time. Posts read back
// from JSON only carry the string form.
func (p *Post) Instant() time.Time {
	if p.Timestamp == nil {
		return time.Time{}
	}
	if !p.Timestamp.At.IsZero() {
		return p.Timestamp.At
	}
	t, err := time.Parse(time.RFC3339Nano, p.Timestamp.Instant)
	if err != nil {
		return time.Time{}
	}
	return t
}
