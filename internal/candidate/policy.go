package candidate

import (
	"context"
	"go-postdate/internal/postdate"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Policy tries candidates in provenance order and keeps the first that parses.
type Policy struct {
	parser           *postdate.Parser
	enableRecognized bool
	logger           zerolog.Logger
}

func NewPolicy(parser *postdate.Parser, enableRecognized bool, logger zerolog.Logger) *Policy {
	if parser == nil {
		parser = postdate.New(nil)
	}
	return &Policy{
		parser:           parser,
		enableRecognized: enableRecognized,
		logger:           logger,
	}
}

// Select resolves the candidates of one post against ref. Structured
// attributes are read as machine timestamps only; everything else goes through
// the loose parser. Recognized-image text is only used when enabled, and rec
// is only called after every other candidate failed. ok is false when nothing
// resolved, which is a normal outcome.
func (p *Policy) Select(ctx context.Context, ref time.Time, candidates []Candidate, rec Recognizer) (Result, bool) {
	if ref.IsZero() {
		ref = p.parser.Now()
	}

	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Provenance.Rank() < ordered[j].Provenance.Rank()
	})

	for _, c := range ordered {
		if c.Provenance == RecognizedImageText && !p.enableRecognized {
			continue
		}
		if res, ok := p.try(c, ref); ok {
			return res, true
		}
	}

	if !p.enableRecognized || rec == nil {
		return Result{}, false
	}

	text, err := rec.RecognizeText(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("text recognition failed, no timestamp")
		return Result{}, false
	}
	text = strings.Join(strings.Fields(text), " ")
	return p.try(Candidate{Provenance: RecognizedImageText, Value: text}, ref)
}

func (p *Policy) try(c Candidate, ref time.Time) (Result, bool) {
	var (
		m  postdate.Match
		ok bool
	)
	if c.Provenance == StructuredAttribute {
		m, ok = p.parser.ParseAbsolute(c.Value, ref)
	} else {
		m, ok = p.parser.Match(c.Value, ref)
	}
	if !ok {
		return Result{}, false
	}

	p.logger.Debug().
		Str("provenance", string(c.Provenance)).
		Str("kind", m.Kind.String()).
		Str("raw", c.Value).
		Msg("timestamp resolved")

	return Result{
		Instant:    m.ISO(),
		Raw:        c.Value,
		Provenance: c.Provenance.Source(),
		At:         m.Instant.UTC(),
	}, true
}
