package parser

import (
	"regexp"
	"strings"
)

var (
	graphLabelRegex    = regexp.MustCompile(`(?i)^(Graph|Graph\s*Problems?):$`)
	revisionLabelRegex = regexp.MustCompile(`(?i)^Revision:$`)
	theoryLabelRegex   = regexp.MustCompile(`(?i)^(Theory\s*Revision|Theory):$`)

	// Inline shorthand: "Revision: Heaps" is a task on its own
	inlineRevisionRegex = regexp.MustCompile(`(?i)^Revision:\s+(.+)$`)
	inlineTheoryRegex   = regexp.MustCompile(`(?i)^Theory\s+Revision:\s+(.+)$`)
)

const (
	fenceMarker = "```"
	taskMarker  = "- "
	separator   = "---"
)

// tokenState is carried from line to line while scanning a day block
type tokenState struct {
	category Category
	inFence  bool
}

// tokenize converts the lines of one day block into tasks in source order.
// Every day block starts in the graph category outside any code fence.
func tokenize(lines []string) []Task {
	tasks := make([]Task, 0)
	state := tokenState{category: CategoryGraph}

	for i := 0; i < len(lines); i++ {
		var (
			task     *Task
			consumed int
		)
		state, task, consumed = step(state, lines[i:])
		if task != nil {
			tasks = append(tasks, *task)
		}
		i += consumed - 1
	}

	return tasks
}

// step interprets the first of the remaining lines. It returns the next
// state, the task emitted (if any) and how many lines were consumed.
func step(state tokenState, rest []string) (tokenState, *Task, int) {
	line := rest[0]
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, fenceMarker) {
		state.inFence = !state.inFence
		return state, nil, 1
	}
	if state.inFence {
		return state, nil, 1
	}

	if trimmed == "" || trimmed == separator {
		return state, nil, 1
	}

	switch {
	case graphLabelRegex.MatchString(trimmed):
		state.category = CategoryGraph
		return state, nil, 1
	case revisionLabelRegex.MatchString(trimmed):
		state.category = CategoryRevision
		return state, nil, 1
	case theoryLabelRegex.MatchString(trimmed):
		state.category = CategoryTheory
		return state, nil, 1
	}

	if matches := inlineRevisionRegex.FindStringSubmatch(trimmed); matches != nil {
		return state, &Task{Title: strings.TrimSpace(matches[1]), Category: CategoryRevision}, 1
	}
	if matches := inlineTheoryRegex.FindStringSubmatch(trimmed); matches != nil {
		return state, &Task{Title: strings.TrimSpace(matches[1]), Category: CategoryTheory}, 1
	}

	if strings.HasPrefix(trimmed, taskMarker) {
		task := &Task{
			Title:    strings.TrimSpace(trimmed[len(taskMarker):]),
			Category: state.category,
		}
		if len(rest) > 1 {
			if link := extractLink(rest[1]); link != "" {
				task.Link = link
				return state, task, 2
			}
		}
		return state, task, 1
	}

	// Stray links and unrecognised prose are skipped
	return state, nil, 1
}

// extractLink returns the trimmed line if it is a bare http(s) URL
func extractLink(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return ""
}
