// Package grading scores a test run. Pure computation, no I/O: callers
// persist the outcome through the attempt store.
package grading

import (
	"github.com/knolage/knolage/internal/attempt"
	"github.com/knolage/knolage/internal/quiz"
)

// Outcome is the result of grading one run: the aggregate score plus the
// normalized answer rows to persist. Answer AttemptID fields are zero
// until the attempt store assigns one.
type Outcome struct {
	Score    int
	MaxScore int
	Answers  []attempt.Answer
}

// Grade scores selections (question id -> selected option ids) against t.
//
// A question counts toward Score iff the selected set equals the set of
// options marked correct — exact set equality, so an empty correct set is
// matched only by an empty selection. Row emission is a different
// granularity on purpose: an unanswered question yields one row with a nil
// option and IsCorrect false, an answered one yields a row per distinct
// selected option flagged by that option's own membership in the correct
// set. Rows follow question order; within a question, set iteration order.
func Grade(t *quiz.Test, selections map[string][]string) Outcome {
	var out Outcome
	if t == nil {
		return out
	}
	out.MaxScore = len(t.Questions)

	for _, q := range t.Questions {
		correct := correctSet(q)
		selected := toSet(selections[q.ID])

		if setEqual(correct, selected) {
			out.Score++
		}

		if len(selected) == 0 {
			out.Answers = append(out.Answers, attempt.Answer{
				QuestionID: q.ID,
			})
			continue
		}
		for id := range selected {
			id := id // per-iteration copy: &id below must not alias across iterations under Go <1.22 loop semantics
			_, hit := correct[id]
			out.Answers = append(out.Answers, attempt.Answer{
				QuestionID:       q.ID,
				SelectedOptionID: &id,
				IsCorrect:        hit,
			})
		}
	}
	return out
}

func correctSet(q quiz.TestQuestion) map[string]struct{} {
	m := make(map[string]struct{})
	for _, o := range q.Options {
		if o.IsCorrect {
			m[o.ID] = struct{}{}
		}
	}
	return m
}

func toSet(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
