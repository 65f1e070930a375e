// Package ingest builds a roadmap from markdown, preferring a structured
// extraction (for example one produced by a language model) and falling
// back to the local parser whenever that extraction is missing, broken or
// empty. References always come from the local parser.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gubarz/roadforge/internal/parser"
	"github.com/rs/zerolog"
)

// ErrEmptyExtraction is returned when an extractor produced no weeks
var ErrEmptyExtraction = errors.New("extraction has no weeks")

// Source names where the weeks of a result came from
type Source string

const (
	SourceExtractor Source = "extractor"
	SourceParser    Source = "parser"
)

// Extractor produces a structured roadmap from markdown by other means
// than the local parser. Only Weeks of the returned roadmap are used.
type Extractor interface {
	Extract(ctx context.Context, markdown string) (*parser.Roadmap, error)
}

// Result is an ingested roadmap and the source of its weeks
type Result struct {
	Roadmap *parser.Roadmap
	Source  Source
	// Fallback is the extractor failure that caused the parser to be used
	Fallback error
}

// Ingester combines an optional extractor with the local parser
type Ingester struct {
	parser    *parser.Parser
	extractor Extractor
	logger    zerolog.Logger
}

// NewIngester creates an ingester around p. A nil extractor means the
// parser is always used.
func NewIngester(p *parser.Parser, extractor Extractor) *Ingester {
	return &Ingester{
		parser:    p,
		extractor: extractor,
		logger:    zerolog.Nop(),
	}
}

// WithLogger sets the logger used to report fallbacks
func (in *Ingester) WithLogger(l zerolog.Logger) *Ingester {
	in.logger = l
	return in
}

// Ingest returns the roadmap for markdown. Extractor failures are not
// errors; only cancellation of ctx is.
func (in *Ingester) Ingest(ctx context.Context, markdown string) (*Result, error) {
	local := in.parser.Parse(markdown)
	if in.extractor == nil {
		return &Result{Roadmap: local, Source: SourceParser}, nil
	}

	extracted, err := in.extract(ctx, markdown)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		in.logger.Warn().Err(err).Msg("structured extraction failed, falling back to local parser")
		return &Result{Roadmap: local, Source: SourceParser, Fallback: err}, nil
	}

	return &Result{
		Roadmap: &parser.Roadmap{
			Title:      local.Title,
			Weeks:      extracted.Weeks,
			References: local.References,
		},
		Source: SourceExtractor,
	}, nil
}

func (in *Ingester) extract(ctx context.Context, markdown string) (*parser.Roadmap, error) {
	r, err := in.extractor.Extract(ctx, markdown)
	if err != nil {
		return nil, err
	}
	if r == nil || len(r.Weeks) == 0 {
		return nil, ErrEmptyExtraction
	}
	normalize(r)
	if err := Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// normalize replaces nil slices so the result encodes like parser output
func normalize(r *parser.Roadmap) {
	for i := range r.Weeks {
		if r.Weeks[i].Days == nil {
			r.Weeks[i].Days = []parser.Day{}
		}
		for j := range r.Weeks[i].Days {
			if r.Weeks[i].Days[j].Tasks == nil {
				r.Weeks[i].Days[j].Tasks = []parser.Task{}
			}
		}
	}
}

// JSONExtractor reads a structured extraction saved as JSON. The file uses
// the extraction schema, where a missing link is null.
type JSONExtractor struct {
	Path string
}

type extractedRoadmap struct {
	Weeks []struct {
		WeekNumber int    `json:"weekNumber"`
		Title      string `json:"title"`
		Days       []struct {
			DayNumber int            `json:"dayNumber"`
			Type      parser.DayType `json:"type"`
			Tasks     []struct {
				Title    string          `json:"title"`
				Category parser.Category `json:"category"`
				Link     *string         `json:"link"`
			} `json:"tasks"`
		} `json:"days"`
	} `json:"weeks"`
}

// Extract implements Extractor
func (e JSONExtractor) Extract(ctx context.Context, _ string) (*parser.Roadmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("read extraction: %w", err)
	}

	var raw extractedRoadmap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode extraction %s: %w", e.Path, err)
	}

	r := &parser.Roadmap{}
	for _, w := range raw.Weeks {
		week := parser.Week{WeekNumber: w.WeekNumber, Title: w.Title}
		for _, d := range w.Days {
			day := parser.Day{DayNumber: d.DayNumber, Type: d.Type}
			for _, t := range d.Tasks {
				task := parser.Task{Title: t.Title, Category: t.Category}
				if t.Link != nil {
					task.Link = *t.Link
				}
				day.Tasks = append(day.Tasks, task)
			}
			week.Days = append(week.Days, day)
		}
		r.Weeks = append(r.Weeks, week)
	}

	return r, nil
}
