package classify

import (
	"strings"

	"project-board-api/internal/models"
)

// Classification is the lifecycle status implied by a column's display name.
// Unknown means the name matched no heuristic and the caller must leave the
// task's existing status untouched rather than guess.
type Classification int

const (
	Unknown Classification = iota
	Todo
	InProgress
	Done
)

// Keyword sets are checked in priority order: done before in-progress before
// todo, so a label like "Done & Archived" never matches a "doing" heuristic.
var (
	doneKeywords       = []string{"done", "complete", "completed", "finished", "closed"}
	inProgressKeywords = []string{"progress", "doing", "active", "working"}
	// matched against the whitespace/hyphen-stripped variant only
	inProgressStripped = []string{"inprogress", "wip"}
	todoKeywords       = []string{"to do", "todo", "backlog", "queue", "planned"}
)

// FromColumnName infers the lifecycle status tasks entering a column should
// carry, using substring heuristics on the lower-cased name.
func FromColumnName(name string) Classification {
	lower := strings.ToLower(name)
	stripped := strings.NewReplacer(" ", "", "\t", "", "-", "").Replace(lower)

	if containsAny(lower, doneKeywords) {
		return Done
	}
	if containsAny(lower, inProgressKeywords) || containsAny(stripped, inProgressStripped) {
		return InProgress
	}
	if containsAny(lower, todoKeywords) {
		return Todo
	}
	return Unknown
}

// Status maps a known classification to its task status. ok is false for
// Unknown.
func (c Classification) Status() (status models.TaskStatus, ok bool) {
	switch c {
	case Todo:
		return models.StatusTodo, true
	case InProgress:
		return models.StatusInProgress, true
	case Done:
		return models.StatusDone, true
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
