package records

import "github.com/gubarz/roadforge/internal/parser"

// Summarize counts weeks, days, tasks and references. Every category is
// present in ByCategory, with a zero total when unused.
func Summarize(r *parser.Roadmap) Stats {
	stats := Stats{
		Weeks:      len(r.Weeks),
		TotalDays:  r.DayCount(),
		TotalTasks: r.TaskCount(),
		References: len(r.References),
		ByCategory: make(map[parser.Category]CategoryStats, len(parser.Categories)),
	}

	for _, c := range parser.Categories {
		stats.ByCategory[c] = CategoryStats{}
	}
	for _, w := range r.Weeks {
		for _, d := range w.Days {
			for _, t := range d.Tasks {
				cs := stats.ByCategory[t.Category]
				cs.Total++
				stats.ByCategory[t.Category] = cs
			}
		}
	}

	return stats
}
