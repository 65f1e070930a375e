// Package ui renders roadmaps for the terminal and encodes them for other
// tools.
package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gubarz/roadforge/internal/parser"
	"github.com/gubarz/roadforge/internal/records"
	"github.com/gubarz/roadforge/internal/schedule"
)

// Printer writes human readable roadmap output
type Printer struct {
	w      io.Writer
	styles *StyleManager
}

// NewPrinter creates a printer for w, picking styles with StylesFor
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styles: StylesFor(w)}
}

// WithStyles overrides the styles picked for the writer
func (p *Printer) WithStyles(s *StyleManager) *Printer {
	p.styles = s
	return p
}

// Roadmap prints every week, day and task of r in document order
func (p *Printer) Roadmap(r *parser.Roadmap) {
	p.line(p.styles.Header.Render(r.Title))
	p.line(p.styles.Dim.Render(fmt.Sprintf("%d weeks, %d days, %d tasks, %d references",
		len(r.Weeks), r.DayCount(), r.TaskCount(), len(r.References))))

	for _, w := range r.Weeks {
		p.line("")
		p.line(p.styles.Week.Render(weekHeading(w.WeekNumber, w.Title)))
		for _, d := range w.Days {
			p.day(d, "  ")
		}
	}
}

// Day prints a single scheduled day
func (p *Printer) Day(slot schedule.Slot) {
	p.line(p.styles.Week.Render(weekHeading(slot.WeekNumber, slot.WeekTitle)))
	p.line(p.styles.Dim.Render(fmt.Sprintf("roadmap day %d", slot.GlobalDayIndex+1)))
	p.day(slot.Day, "")
}

func (p *Printer) day(d parser.Day, indent string) {
	p.line(indent + p.styles.Day.Render(dayHeading(d)))
	if len(d.Tasks) == 0 {
		p.line(indent + "  " + p.styles.Dim.Render("(no tasks)"))
		return
	}

	for _, t := range d.Tasks {
		label := fmt.Sprintf("[%s]", t.Category)
		p.line(indent + "  " + p.styles.Category(t.Category).Render(label) + " " + t.Title)
		if t.Link != "" {
			pad := strings.Repeat(" ", len(label)+1)
			p.line(indent + "  " + pad + p.styles.Link.Render(t.Link))
		}
	}
}

// References lists reference section titles
func (p *Printer) References(refs []parser.Reference) {
	if len(refs) == 0 {
		p.line(p.styles.Dim.Render("no reference sections"))
		return
	}
	for _, ref := range refs {
		p.line(p.styles.Header.Render(ref.SectionTitle))
	}
}

// Reference prints one reference section with its content verbatim
func (p *Printer) Reference(ref parser.Reference) {
	p.line(p.styles.Header.Render(ref.SectionTitle))
	p.line("")
	p.line(ref.ContentMarkdown)
}

// Stats prints import statistics, categories in their canonical order
func (p *Printer) Stats(name string, s records.Stats) {
	if name != "" {
		p.line(p.styles.Header.Render(name))
	}
	p.line(fmt.Sprintf("  weeks: %d  days: %d  tasks: %d  references: %d",
		s.Weeks, s.TotalDays, s.TotalTasks, s.References))

	var parts []string
	for _, c := range sortedCategories(s.ByCategory) {
		parts = append(parts, p.styles.Category(c).Render(fmt.Sprintf("%s: %d", c, s.ByCategory[c].Total)))
	}
	if len(parts) > 0 {
		p.line("  " + strings.Join(parts, "  "))
	}
}

func (p *Printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func weekHeading(number int, title string) string {
	return fmt.Sprintf("Week %d: %s", number, title)
}

func dayHeading(d parser.Day) string {
	if d.Type == parser.DayWeekend {
		return "Weekend"
	}
	return fmt.Sprintf("Day %d", d.DayNumber)
}

// sortedCategories lists known categories first, then any others by name
func sortedCategories(m map[parser.Category]records.CategoryStats) []parser.Category {
	var out []parser.Category
	for _, c := range parser.Categories {
		if _, ok := m[c]; ok {
			out = append(out, c)
		}
	}
	var extra []parser.Category
	for c := range m {
		if !c.Valid() {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
