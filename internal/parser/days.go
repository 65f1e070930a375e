package parser

import "strings"

// dayBlock holds the raw body of one day within a week
type dayBlock struct {
	number  int
	dayType DayType
	lines   []string
}

// parseWeek splits a week body into days and tokenizes each of them
func (p *Parser) parseWeek(wb weekBlock) []Day {
	blocks := splitDays(wb.lines)

	days := make([]Day, 0, len(blocks))
	for _, b := range blocks {
		tasks := tokenize(b.lines)
		if len(tasks) == 0 && b.dayType != DayWeekend {
			p.logger.Debug().
				Int("week", wb.number).
				Int("day", b.number).
				Msg("dropping day without tasks")
			continue
		}
		days = append(days, Day{DayNumber: b.number, Type: b.dayType, Tasks: tasks})
	}

	if len(days) > 0 {
		return days
	}

	// No usable day structure: read the whole week as a single day
	tasks := tokenize(wb.lines)
	if len(tasks) == 0 {
		return days
	}
	p.logger.Debug().Int("week", wb.number).Int("tasks", len(tasks)).Msg("using whole week as day 1")
	return append(days, Day{DayNumber: 1, Type: DayWeekday, Tasks: tasks})
}

// splitDays groups week body lines under "### Day N" and "### Weekend"
// headers. Content before the first header becomes an implicit Day 1, which
// only starts at the first line that is neither blank nor a "---" separator.
func splitDays(lines []string) []dayBlock {
	var (
		blocks  []dayBlock
		current *dayBlock
	)

	open := func(b dayBlock) {
		if current != nil {
			blocks = append(blocks, *current)
		}
		current = &b
	}

	for _, line := range lines {
		if matches := dayHeaderRegex.FindStringSubmatch(line); matches != nil {
			open(dayBlock{number: atoi(matches[1]), dayType: DayWeekday})
			continue
		}

		if weekendHeaderRegex.MatchString(line) {
			open(dayBlock{number: WeekendDayNumber, dayType: DayWeekend})
			continue
		}

		if current == nil {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "---") {
				continue
			}
			current = &dayBlock{number: 1, dayType: DayWeekday}
		}
		current.lines = append(current.lines, line)
	}

	if current != nil {
		blocks = append(blocks, *current)
	}

	return blocks
}
