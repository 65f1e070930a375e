package ingest

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gubarz/roadforge/internal/parser"
)

var linkRegex = regexp.MustCompile(`^https?://\S+$`)

// ValidationError reports a structurally invalid roadmap
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid roadmap: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks that a roadmap has at least one week and that every week,
// day and task is well formed. Parser output can fail it too, for example
// when a document has no weeks or uses "### Day 0".
func Validate(r *parser.Roadmap) error {
	if r == nil {
		return &ValidationError{Err: ErrEmptyExtraction}
	}

	err := validation.ValidateStruct(r,
		validation.Field(&r.Weeks, validation.Required, validation.Each(validation.By(validateWeek))),
	)
	if err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func validateWeek(value any) error {
	w, ok := value.(parser.Week)
	if !ok {
		return validation.NewError("roadforge.week.type", "must be a week")
	}
	return validation.ValidateStruct(&w,
		validation.Field(&w.WeekNumber, validation.Required, validation.Min(1)),
		validation.Field(&w.Days, validation.Each(validation.By(validateDay))),
	)
}

func validateDay(value any) error {
	d, ok := value.(parser.Day)
	if !ok {
		return validation.NewError("roadforge.day.type", "must be a day")
	}
	return validation.ValidateStruct(&d,
		validation.Field(&d.DayNumber, validation.Required, validation.Min(1)),
		validation.Field(&d.Type, validation.Required, validation.In(parser.DayWeekday, parser.DayWeekend)),
		validation.Field(&d.Tasks, validation.Each(validation.By(validateTask))),
	)
}

func validateTask(value any) error {
	t, ok := value.(parser.Task)
	if !ok {
		return validation.NewError("roadforge.task.type", "must be a task")
	}
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required),
		validation.Field(&t.Category, validation.Required,
			validation.In(parser.CategoryGraph, parser.CategoryRevision, parser.CategoryTheory)),
		validation.Field(&t.Link, validation.Match(linkRegex).Error("must be an http(s) URL")),
	)
}
