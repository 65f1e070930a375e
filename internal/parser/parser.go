// Package parser turns markdown study roadmaps into weeks, days and tasks.
//
// The input is loosely structured text written by people or language models,
// so the parser never fails: anything it does not recognise is ignored.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
)

// DefaultExcludedSections are top-level sections dropped from the references.
// They are wrapper and summary boilerplate of one family of generated roadmaps.
var DefaultExcludedSections = []string{
	"8-week graph mastery roadmap (placement-oriented)",
	"final outcome after 8 weeks",
}

// Parser converts roadmap markdown into a Roadmap. A Parser keeps no state
// between calls and may be shared between goroutines.
type Parser struct {
	excluded map[string]struct{}
	logger   zerolog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithExcludedSections replaces the set of section titles that are never
// returned as references. Matching is case-insensitive.
func WithExcludedSections(titles ...string) Option {
	return func(p *Parser) {
		p.excluded = make(map[string]struct{}, len(titles))
		for _, t := range titles {
			p.excluded[foldTitle(t)] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for debug tracing of dropped content
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// NewParser creates a new parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: zerolog.Nop()}
	WithExcludedSections(DefaultExcludedSections...)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses markdown with the default parser
func Parse(markdown string) *Roadmap {
	return defaultParser.Parse(markdown)
}

// Parse converts markdown into a Roadmap. It never fails; empty input yields
// an untitled roadmap with no weeks and no references.
func (p *Parser) Parse(markdown string) *Roadmap {
	lines := splitLines(markdown)
	weekBlocks, refBlocks := p.splitSections(lines)

	roadmap := &Roadmap{
		Title:      extractTitle(lines),
		Weeks:      make([]Week, 0, len(weekBlocks)),
		References: extractReferences(refBlocks),
	}

	for _, wb := range weekBlocks {
		roadmap.Weeks = append(roadmap.Weeks, Week{
			WeekNumber: wb.number,
			Title:      wb.title,
			Days:       p.parseWeek(wb),
		})
	}

	p.logger.Debug().
		Str("title", roadmap.Title).
		Int("weeks", len(roadmap.Weeks)).
		Int("references", len(roadmap.References)).
		Msg("parsed roadmap")

	return roadmap
}

func (p *Parser) isExcluded(title string) bool {
	_, ok := p.excluded[foldTitle(title)]
	return ok
}

// splitLines splits on newlines and drops the carriage return of CRLF input
func splitLines(markdown string) []string {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// extractTitle returns the text of the first single-# header
func extractTitle(lines []string) string {
	for _, line := range lines {
		if matches := sectionHeaderRegex.FindStringSubmatch(line); matches != nil {
			return strings.TrimSpace(matches[1])
		}
	}
	return UntitledRoadmap
}

func extractReferences(blocks []sectionBlock) []Reference {
	refs := make([]Reference, 0, len(blocks))
	for _, b := range blocks {
		if isBlank(b.lines) {
			continue
		}
		refs = append(refs, Reference{
			SectionTitle:    b.title,
			ContentMarkdown: strings.TrimSpace(strings.Join(b.lines, "\n")),
		})
	}
	return refs
}

func isBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// foldTitle normalises a section title for case-insensitive lookup.
// A Caser is not safe for concurrent use, so one is built per call.
func foldTitle(title string) string {
	return cases.Fold().String(strings.TrimSpace(title))
}

// atoi parses a run of digits matched by a header pattern. Values that do
// not fit in an int saturate instead of failing.
func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}
