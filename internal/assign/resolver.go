package assign

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Candidate is a lightweight projection of a team member eligible for
// assignment within a project.
type Candidate struct {
	ID              string
	Name            string // "First Last"
	Role            string
	CompletedCount  int64 // historical, shown to the suggester as context
	InProgressCount int64 // current IN_PROGRESS tasks in the project
}

// Suggester is the external advisory collaborator. It returns free text
// expected to contain a suggested person's name; there is no structured
// contract and the call may fail or time out. The resolver treats any
// failure as "no suggestion".
type Suggester interface {
	Suggest(ctx context.Context, title, description string, candidates []Candidate) (string, error)
}

// Resolver picks an assignee for a task by combining the advisory suggestion
// with a deterministic workload fallback. The suggestion is untrusted text:
// the name-resolution step is the boundary between natural language and a
// real identifier, and the fallback keeps the operation useful offline.
type Resolver struct {
	suggester Suggester
}

func NewResolver(s Suggester) *Resolver {
	return &Resolver{suggester: s}
}

// Resolve returns the chosen candidate id, or "" when the pool is empty.
// It never returns an error for suggester failures; the caller decides the
// policy for an empty pool.
func (r *Resolver) Resolve(ctx context.Context, title, description string, candidates []Candidate) string {
	if len(candidates) == 0 {
		return ""
	}

	if id := r.resolveSuggestion(ctx, title, description, candidates); id != "" {
		return id
	}
	return lowestWorkload(candidates)
}

// resolveSuggestion calls the suggester once and tries to match the returned
// text against a candidate name. Any failure or unmatched suggestion yields
// "".
func (r *Resolver) resolveSuggestion(ctx context.Context, title, description string, candidates []Candidate) string {
	if r.suggester == nil {
		return ""
	}
	text, err := r.suggester.Suggest(ctx, title, description, candidates)
	if err != nil {
		log.WithFields(log.Fields{"task": title, "error": err}).Warn("assignment suggestion unavailable, falling back to workload")
		return ""
	}
	return MatchSuggestedName(text, candidates)
}

// MatchSuggestedName resolves free-text advice to a candidate id by
// case-insensitive substring match of the suggested text against each
// candidate's full name. First match wins; "" when nothing matches.
func MatchSuggestedName(suggestion string, candidates []Candidate) string {
	s := strings.ToLower(strings.TrimSpace(suggestion))
	if s == "" {
		return ""
	}
	for _, c := range candidates {
		name := strings.ToLower(c.Name)
		if name == "" {
			continue
		}
		if strings.Contains(s, name) || strings.Contains(name, s) {
			return c.ID
		}
	}
	return ""
}

// lowestWorkload picks the candidate with the strictly lowest in-progress
// count. Ties go to the earliest candidate in the list, which is stable
// query output, so the result is deterministic.
func lowestWorkload(candidates []Candidate) string {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.InProgressCount < best.InProgressCount {
			best = c
		}
	}
	return best.ID
}
