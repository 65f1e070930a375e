package records

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gubarz/roadforge/internal/parser"
	"github.com/gubarz/roadforge/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# Graph Roadmap

# Cheatsheet
BFS uses a queue.

# WEEK 2 – Shortest Paths
### Day 1
- Dijkstra
https://leetcode.com/problems/network-delay-time
### Weekend

# WEEK 1 – Traversal
### Day 1
Graph:
- Number of Islands
Revision:
- Arrays
### Day 2
Theory Revision: Graph representations
`

// sequentialIDs returns deterministic identifiers 00000000-...-000000000001, ...
func sequentialIDs() func() uuid.UUID {
	var n byte
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		id[15] = n
		return id
	}
}

func TestBuild(t *testing.T) {
	roadmap := parser.Parse(sample)
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	set := NewBuilder().WithIDGenerator(sequentialIDs()).Build(roadmap, start)

	assert.Equal(t, "Graph Roadmap", set.Roadmap.Title)
	assert.Equal(t, start, set.Roadmap.StartDate)
	assert.Equal(t, 2, set.Roadmap.TotalWeeks)
	assert.Equal(t, 4, set.Roadmap.TotalDays)

	require.Len(t, set.Weeks, 2)
	assert.Equal(t, 1, set.Weeks[0].WeekNumber, "weeks are ordered by number")
	assert.Equal(t, "Shortest Paths", set.Weeks[1].Title)

	require.Len(t, set.Days, 4)
	for i, d := range set.Days {
		assert.Equal(t, i, d.GlobalDayIndex)
		assert.Equal(t, set.Roadmap.ID, d.RoadmapID)
	}
	assert.Equal(t, set.Weeks[0].ID, set.Days[0].WeekID)
	assert.Equal(t, set.Weeks[0].ID, set.Days[1].WeekID)
	assert.Equal(t, set.Weeks[1].ID, set.Days[2].WeekID)
	assert.Equal(t, parser.DayWeekend, set.Days[3].Type)
	assert.Equal(t, 6, set.Days[3].DayNumber)

	require.Len(t, set.Tasks, 4)
	assert.Equal(t, set.Days[0].ID, set.Tasks[0].DayID)
	assert.Equal(t, parser.CategoryRevision, set.Tasks[1].Category)
	assert.Equal(t, parser.CategoryTheory, set.Tasks[2].Category)
	assert.Equal(t, "https://leetcode.com/problems/network-delay-time", set.Tasks[3].Link)
	for _, task := range set.Tasks {
		assert.False(t, task.Completed)
	}

	require.Len(t, set.References, 1)
	assert.Equal(t, "Cheatsheet", set.References[0].SectionTitle)
	assert.Equal(t, set.Roadmap.ID, set.References[0].RoadmapID)

	seen := map[uuid.UUID]bool{}
	for _, id := range collectIDs(set) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestBuild_MatchesFlatten(t *testing.T) {
	roadmap := parser.Parse(sample)
	set := Build(roadmap, time.Now())
	slots := schedule.Flatten(roadmap)

	require.Len(t, set.Days, len(slots))
	for i, s := range slots {
		assert.Equal(t, s.GlobalDayIndex, set.Days[i].GlobalDayIndex)
		assert.Equal(t, s.WeekNumber, set.Days[i].WeekNumber)
		assert.Equal(t, s.Day.DayNumber, set.Days[i].DayNumber)
	}
}

func TestBuild_EmptyRoadmap(t *testing.T) {
	set := Build(parser.Parse(""), time.Time{})

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"weeks":[]`)
	assert.Contains(t, string(data), `"tasks":[]`)
	assert.Equal(t, parser.UntitledRoadmap, set.Roadmap.Title)
}

func TestSummarize(t *testing.T) {
	stats := Summarize(parser.Parse(sample))

	assert.Equal(t, Stats{
		Weeks:      2,
		TotalDays:  4,
		TotalTasks: 4,
		References: 1,
		ByCategory: map[parser.Category]CategoryStats{
			parser.CategoryGraph:    {Total: 2},
			parser.CategoryRevision: {Total: 1},
			parser.CategoryTheory:   {Total: 1},
		},
	}, stats)
}

func collectIDs(set *Set) []uuid.UUID {
	ids := []uuid.UUID{set.Roadmap.ID}
	for _, w := range set.Weeks {
		ids = append(ids, w.ID)
	}
	for _, d := range set.Days {
		ids = append(ids, d.ID)
	}
	for _, task := range set.Tasks {
		ids = append(ids, task.ID)
	}
	for _, r := range set.References {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestTrack(t *testing.T) {
	const plan = `# WEEK 1 – Basics
### Day 1
- a
Revision:
- b
### Day 2
- c
### Day 3
Theory Revision: d
`
	tests := []struct {
		name     string
		complete []int
		want     Progress
	}{
		{
			name: "nothing done",
			want: Progress{TotalDays: 3, TotalTasks: 4},
		},
		{
			name:     "all done",
			complete: []int{0, 1, 2},
			want:     Progress{TotalDays: 3, DaysCompleted: 3, TotalTasks: 4, CompletedTasks: 4, CompletionPercentage: 100, Streak: 3},
		},
		{
			name:     "recent days done",
			complete: []int{1, 2},
			want:     Progress{TotalDays: 3, DaysCompleted: 2, TotalTasks: 4, CompletedTasks: 2, CompletionPercentage: 50, Streak: 2},
		},
		{
			name:     "broken streak",
			complete: []int{0, 2},
			want:     Progress{TotalDays: 3, DaysCompleted: 2, TotalTasks: 4, CompletedTasks: 3, CompletionPercentage: 75, Streak: 1},
		},
		{
			name:     "latest day open",
			complete: []int{0, 1},
			want:     Progress{TotalDays: 3, DaysCompleted: 2, TotalTasks: 4, CompletedTasks: 3, CompletionPercentage: 75, Streak: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Build(parser.Parse(plan), time.Time{})
			var ids []uuid.UUID
			for _, i := range tt.complete {
				ids = append(ids, set.Days[i].ID)
			}
			set.Complete(ids...)

			got := set.Progress
			byCategory := got.ByCategory
			got.ByCategory = nil
			assert.Equal(t, tt.want, got)
			assert.Len(t, byCategory, 3)
			assert.Equal(t, 2, byCategory[parser.CategoryGraph].Total)
		})
	}
}

func TestTrack_Categories(t *testing.T) {
	set := Build(parser.Parse(sample), time.Time{})
	set.Complete(set.Days[0].ID)

	p := set.Progress
	assert.Equal(t, CategoryStats{Total: 2, Completed: 1}, p.ByCategory[parser.CategoryGraph])
	assert.Equal(t, CategoryStats{Total: 1, Completed: 1}, p.ByCategory[parser.CategoryRevision])
	assert.Equal(t, CategoryStats{Total: 1}, p.ByCategory[parser.CategoryTheory])
	assert.Equal(t, 50, p.CompletionPercentage)
}

func TestTrack_EmptyDayEndsStreak(t *testing.T) {
	// The last day of sample is a weekend without tasks
	set := Build(parser.Parse(sample), time.Time{})
	set.Complete(set.Days[0].ID, set.Days[1].ID, set.Days[2].ID)

	p := set.Progress
	assert.Equal(t, 4, p.TotalDays)
	assert.Equal(t, 3, p.DaysCompleted)
	assert.Equal(t, 100, p.CompletionPercentage)
	assert.Equal(t, 0, p.Streak)
}

func TestTrack_PartialDay(t *testing.T) {
	set := Build(parser.Parse(sample), time.Time{})
	set.Tasks[0].Completed = true

	p := Track(set)
	assert.Equal(t, 1, p.CompletedTasks)
	assert.Equal(t, 0, p.DaysCompleted)
	assert.Equal(t, 25, p.CompletionPercentage)
}

func TestTrack_Empty(t *testing.T) {
	p := Build(parser.Parse(""), time.Time{}).Progress
	assert.Equal(t, 0, p.CompletionPercentage)
	assert.Equal(t, 0, p.Streak)
	assert.Len(t, p.ByCategory, 3)
}
