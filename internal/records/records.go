// Package records flattens a parsed roadmap into normalized rows with
// generated identifiers and foreign keys, ready for a storage layer.
package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/gubarz/roadforge/internal/parser"
	"github.com/gubarz/roadforge/internal/schedule"
)

// RoadmapRecord is the root row of an imported roadmap
type RoadmapRecord struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	StartDate  time.Time `json:"startDate" yaml:"startDate"`
	TotalWeeks int       `json:"totalWeeks" yaml:"totalWeeks"`
	TotalDays  int       `json:"totalDays" yaml:"totalDays"`
}

// WeekRecord is one week row
type WeekRecord struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	RoadmapID  uuid.UUID `json:"roadmapId" yaml:"roadmapId"`
	WeekNumber int       `json:"weekNumber" yaml:"weekNumber"`
	Title      string    `json:"title" yaml:"title"`
}

// DayRecord is one day row, ordered by GlobalDayIndex
type DayRecord struct {
	ID             uuid.UUID      `json:"id" yaml:"id"`
	RoadmapID      uuid.UUID      `json:"roadmapId" yaml:"roadmapId"`
	WeekID         uuid.UUID      `json:"weekId" yaml:"weekId"`
	WeekNumber     int            `json:"weekNumber" yaml:"weekNumber"`
	DayNumber      int            `json:"dayNumber" yaml:"dayNumber"`
	GlobalDayIndex int            `json:"globalDayIndex" yaml:"globalDayIndex"`
	Type           parser.DayType `json:"type" yaml:"type"`
}

// TaskRecord is one task row. Completion starts false.
type TaskRecord struct {
	ID        uuid.UUID       `json:"id" yaml:"id"`
	DayID     uuid.UUID       `json:"dayId" yaml:"dayId"`
	Title     string          `json:"title" yaml:"title"`
	Category  parser.Category `json:"category" yaml:"category"`
	Link      string          `json:"link" yaml:"link"`
	Completed bool            `json:"completed" yaml:"completed"`
}

// ReferenceRecord is one reference section row
type ReferenceRecord struct {
	ID              uuid.UUID `json:"id" yaml:"id"`
	RoadmapID       uuid.UUID `json:"roadmapId" yaml:"roadmapId"`
	SectionTitle    string    `json:"sectionTitle" yaml:"sectionTitle"`
	ContentMarkdown string    `json:"contentMarkdown" yaml:"contentMarkdown"`
}

// CategoryStats counts tasks of one category
type CategoryStats struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
}

// Stats summarises an import
type Stats struct {
	Weeks      int                               `json:"weeks" yaml:"weeks"`
	TotalDays  int                               `json:"totalDays" yaml:"totalDays"`
	TotalTasks int                               `json:"totalTasks" yaml:"totalTasks"`
	References int                               `json:"references" yaml:"references"`
	ByCategory map[parser.Category]CategoryStats `json:"byCategory" yaml:"byCategory"`
}

// Set is every row produced from one roadmap
type Set struct {
	Roadmap    RoadmapRecord     `json:"roadmap" yaml:"roadmap"`
	Weeks      []WeekRecord      `json:"weeks" yaml:"weeks"`
	Days       []DayRecord       `json:"days" yaml:"days"`
	Tasks      []TaskRecord      `json:"tasks" yaml:"tasks"`
	References []ReferenceRecord `json:"references" yaml:"references"`
	Stats      Stats             `json:"stats" yaml:"stats"`
	Progress   Progress          `json:"progress" yaml:"progress"`
}

// Builder creates record sets
type Builder struct {
	newID func() uuid.UUID
}

// NewBuilder creates a builder that uses random UUIDs
func NewBuilder() *Builder {
	return &Builder{newID: uuid.New}
}

// WithIDGenerator sets the identifier source (useful for testing)
func (b *Builder) WithIDGenerator(fn func() uuid.UUID) *Builder {
	b.newID = fn
	return b
}

// Build creates records using random identifiers
func Build(r *parser.Roadmap, startDate time.Time) *Set {
	return NewBuilder().Build(r, startDate)
}

// Build converts a roadmap into rows. Weeks are emitted by ascending week
// number and days carry the same GlobalDayIndex as schedule.Flatten.
func (b *Builder) Build(r *parser.Roadmap, startDate time.Time) *Set {
	set := &Set{
		Weeks:      make([]WeekRecord, 0, len(r.Weeks)),
		Days:       make([]DayRecord, 0, r.DayCount()),
		Tasks:      make([]TaskRecord, 0, r.TaskCount()),
		References: make([]ReferenceRecord, 0, len(r.References)),
	}

	roadmapID := b.newID()
	set.Roadmap = RoadmapRecord{
		ID:         roadmapID,
		Title:      r.Title,
		StartDate:  startDate,
		TotalWeeks: len(r.Weeks),
		TotalDays:  r.DayCount(),
	}

	globalDayIndex := 0
	for _, w := range schedule.SortedWeeks(r) {
		weekID := b.newID()
		set.Weeks = append(set.Weeks, WeekRecord{
			ID:         weekID,
			RoadmapID:  roadmapID,
			WeekNumber: w.WeekNumber,
			Title:      w.Title,
		})

		for _, d := range w.Days {
			dayID := b.newID()
			set.Days = append(set.Days, DayRecord{
				ID:             dayID,
				RoadmapID:      roadmapID,
				WeekID:         weekID,
				WeekNumber:     w.WeekNumber,
				DayNumber:      d.DayNumber,
				GlobalDayIndex: globalDayIndex,
				Type:           d.Type,
			})
			globalDayIndex++

			for _, task := range d.Tasks {
				set.Tasks = append(set.Tasks, TaskRecord{
					ID:       b.newID(),
					DayID:    dayID,
					Title:    task.Title,
					Category: task.Category,
					Link:     task.Link,
				})
			}
		}
	}

	for _, ref := range r.References {
		set.References = append(set.References, ReferenceRecord{
			ID:              b.newID(),
			RoadmapID:       roadmapID,
			SectionTitle:    ref.SectionTitle,
			ContentMarkdown: ref.ContentMarkdown,
		})
	}

	set.Stats = Summarize(r)
	set.Progress = Track(set)
	return set
}
