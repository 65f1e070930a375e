package parser

import (
	"regexp"
	"strings"
)

var (
	// "# WEEK 3 – Trees" or "# week 3 - Trees"
	weekHeaderRegex    = regexp.MustCompile(`(?i)^#\s+WEEK\s+(\d+)\s*[–-]\s*(.+)$`)
	sectionHeaderRegex = regexp.MustCompile(`^#\s+(.+)$`)
	dayHeaderRegex     = regexp.MustCompile(`(?i)^###\s+Day\s+(\d+)`)
	weekendHeaderRegex = regexp.MustCompile(`(?i)^###\s+Weekend`)
)

// weekBlock holds the raw body of one week header
type weekBlock struct {
	number int
	title  string
	lines  []string
}

// sectionBlock holds the raw body of any other top-level header
type sectionBlock struct {
	title string
	lines []string
}

// splitSections partitions lines into week blocks and reference blocks in
// document order. Lines before the first top-level header are discarded, as
// are sections in the exclusion set.
func (p *Parser) splitSections(lines []string) ([]weekBlock, []sectionBlock) {
	var (
		weeks   []weekBlock
		refs    []sectionBlock
		week    *weekBlock
		section *sectionBlock
	)

	closeSection := func() {
		if section == nil {
			return
		}
		if p.isExcluded(section.title) {
			p.logger.Debug().Str("section", section.title).Msg("skipping excluded section")
		} else {
			refs = append(refs, *section)
		}
		section = nil
	}
	closeWeek := func() {
		if week != nil {
			weeks = append(weeks, *week)
			week = nil
		}
	}

	for _, line := range lines {
		if matches := weekHeaderRegex.FindStringSubmatch(line); matches != nil {
			closeSection()
			closeWeek()
			week = &weekBlock{
				number: atoi(matches[1]),
				title:  strings.TrimSpace(matches[2]),
			}
			continue
		}

		if matches := sectionHeaderRegex.FindStringSubmatch(line); matches != nil {
			closeSection()
			closeWeek()
			section = &sectionBlock{title: strings.TrimSpace(matches[1])}
			continue
		}

		switch {
		case week != nil:
			week.lines = append(week.lines, line)
		case section != nil:
			section.lines = append(section.lines, line)
		}
	}

	closeWeek()
	closeSection()

	return weeks, refs
}
