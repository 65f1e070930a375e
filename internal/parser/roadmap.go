package parser

// UntitledRoadmap is the title used when a document has no top-level header
const UntitledRoadmap = "Untitled Roadmap"

// WeekendDayNumber is the day number assigned to every weekend block
const WeekendDayNumber = 6

// Category classifies a task
type Category string

const (
	CategoryGraph    Category = "graph"
	CategoryRevision Category = "revision"
	CategoryTheory   Category = "theory"
)

// Categories lists every category in display order
var Categories = []Category{CategoryGraph, CategoryRevision, CategoryTheory}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryGraph, CategoryRevision, CategoryTheory:
		return true
	}
	return false
}

// Label returns the fixed presentation label for the category
func (c Category) Label() string {
	switch c {
	case CategoryGraph:
		return "Graph"
	case CategoryRevision:
		return "Revision"
	case CategoryTheory:
		return "Theory"
	}
	return string(c)
}

// DayType distinguishes regular days from the weekend block
type DayType string

const (
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
)

// Valid reports whether t is a known day type
func (t DayType) Valid() bool {
	return t == DayWeekday || t == DayWeekend
}

// Roadmap is the structured form of a markdown learning plan
type Roadmap struct {
	Title      string      `json:"title" yaml:"title"`
	Weeks      []Week      `json:"weeks" yaml:"weeks"`
	References []Reference `json:"references" yaml:"references"`
}

// Week is one "# WEEK N – Title" block
type Week struct {
	WeekNumber int    `json:"weekNumber" yaml:"weekNumber"`
	Title      string `json:"title" yaml:"title"`
	Days       []Day  `json:"days" yaml:"days"`
}

// Day is one "### Day N" or "### Weekend" block, or the implicit Day 1
type Day struct {
	DayNumber int     `json:"dayNumber" yaml:"dayNumber"`
	Type      DayType `json:"type" yaml:"type"`
	Tasks     []Task  `json:"tasks" yaml:"tasks"`
}

// Task is a single study item. An empty Link means the task has no link.
type Task struct {
	Title    string   `json:"title" yaml:"title"`
	Category Category `json:"category" yaml:"category"`
	Link     string   `json:"link" yaml:"link"`
}

// Reference is a non-week top-level section kept as verbatim markdown
type Reference struct {
	SectionTitle    string `json:"sectionTitle" yaml:"sectionTitle"`
	ContentMarkdown string `json:"contentMarkdown" yaml:"contentMarkdown"`
}

// TaskCount returns the number of tasks across all weeks
func (r *Roadmap) TaskCount() int {
	n := 0
	for _, w := range r.Weeks {
		for _, d := range w.Days {
			n += len(d.Tasks)
		}
	}
	return n
}

// DayCount returns the number of days across all weeks
func (r *Roadmap) DayCount() int {
	n := 0
	for _, w := range r.Weeks {
		n += len(w.Days)
	}
	return n
}

// Reference returns the reference section with the given title.
// Titles are compared exactly; the first match wins.
func (r *Roadmap) Reference(title string) (Reference, bool) {
	for _, ref := range r.References {
		if ref.SectionTitle == title {
			return ref, true
		}
	}
	return Reference{}, false
}
