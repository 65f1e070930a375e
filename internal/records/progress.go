package records

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/gubarz/roadforge/internal/parser"
)

// Progress reports task completion across a record set
type Progress struct {
	TotalDays            int                               `json:"totalDays" yaml:"totalDays"`
	DaysCompleted        int                               `json:"daysCompleted" yaml:"daysCompleted"`
	TotalTasks           int                               `json:"totalTasks" yaml:"totalTasks"`
	CompletedTasks       int                               `json:"completedTasks" yaml:"completedTasks"`
	CompletionPercentage int                               `json:"completionPercentage" yaml:"completionPercentage"`
	Streak               int                               `json:"streak" yaml:"streak"`
	ByCategory           map[parser.Category]CategoryStats `json:"byCategory" yaml:"byCategory"`
}

// Track computes completion from the task rows of set. A day counts as
// completed when it has at least one task and all are done. Streak is the
// number of completed days counted back from the highest GlobalDayIndex,
// so a day without tasks ends it.
func Track(set *Set) Progress {
	p := Progress{
		TotalDays:  len(set.Days),
		TotalTasks: len(set.Tasks),
		ByCategory: make(map[parser.Category]CategoryStats, len(parser.Categories)),
	}
	for _, c := range parser.Categories {
		p.ByCategory[c] = CategoryStats{}
	}

	type dayTally struct{ total, done int }
	tallies := make(map[uuid.UUID]*dayTally, len(set.Days))

	for _, t := range set.Tasks {
		cs := p.ByCategory[t.Category]
		cs.Total++
		if t.Completed {
			cs.Completed++
			p.CompletedTasks++
		}
		p.ByCategory[t.Category] = cs

		tally, ok := tallies[t.DayID]
		if !ok {
			tally = &dayTally{}
			tallies[t.DayID] = tally
		}
		tally.total++
		if t.Completed {
			tally.done++
		}
	}

	if p.TotalTasks > 0 {
		p.CompletionPercentage = int(math.Round(float64(p.CompletedTasks) * 100 / float64(p.TotalTasks)))
	}

	complete := func(id uuid.UUID) bool {
		tally, ok := tallies[id]
		return ok && tally.total > 0 && tally.done == tally.total
	}

	for _, d := range set.Days {
		if complete(d.ID) {
			p.DaysCompleted++
		}
	}

	days := make([]DayRecord, len(set.Days))
	copy(days, set.Days)
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].GlobalDayIndex < days[j].GlobalDayIndex
	})
	for i := len(days) - 1; i >= 0 && complete(days[i].ID); i-- {
		p.Streak++
	}

	return p
}

// Complete marks the tasks of the given days as done
func (s *Set) Complete(dayIDs ...uuid.UUID) {
	done := make(map[uuid.UUID]bool, len(dayIDs))
	for _, id := range dayIDs {
		done[id] = true
	}
	for i := range s.Tasks {
		if done[s.Tasks[i].DayID] {
			s.Tasks[i].Completed = true
		}
	}
	s.Progress = Track(s)
}
