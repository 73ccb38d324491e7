package ast

import (
	"fmt"
	"strings"
)

// Traversal is an ordered, mutable sequence of steps forming one plan
// scope: the root plan of a query, or a nested sub-plan hanging off a
// compound step. Mutating methods keep the relative order of the steps
// they do not touch. A traversal is not safe for concurrent use; the
// planner assumes exclusive access for the duration of a rewrite.
type Traversal struct {
	steps       []Step
	decorations []string
}

func NewTraversal(steps ...Step) *Traversal {
	return &Traversal{steps: steps}
}

// Len returns the number of top-level steps.
func (t *Traversal) Len() int { return len(t.steps) }

// Steps returns the live backing slice of top-level steps. Callers must
// treat it as read-only and go through the mutating methods for surgery.
func (t *Traversal) Steps() []Step { return t.steps }

// StepAt returns the step at position i.
func (t *Traversal) StepAt(i int) Step { return t.steps[i] }

// IndexOf returns the position of step, or -1 when it is not a top-level
// step of t. Steps are matched by identity, not by value.
func (t *Traversal) IndexOf(step Step) int {
	for i, s := range t.steps {
		if s == step {
			return i
		}
	}
	return -1
}

// Successor returns the step immediately after step, or nil when step is
// the last one or not part of t.
func (t *Traversal) Successor(step Step) Step {
	i := t.IndexOf(step)
	if i < 0 || i+1 >= len(t.steps) {
		return nil
	}
	return t.steps[i+1]
}

// Append adds steps at the end of the traversal and returns t for chaining.
func (t *Traversal) Append(steps ...Step) *Traversal {
	t.steps = append(t.steps, steps...)
	return t
}

// InsertAt places step at position i, shifting the suffix right.
func (t *Traversal) InsertAt(i int, step Step) {
	t.steps = append(t.steps, nil)
	copy(t.steps[i+1:], t.steps[i:])
	t.steps[i] = step
}

// Remove deletes step from the top level of t, reporting whether it was
// found.
func (t *Traversal) Remove(step Step) bool {
	i := t.IndexOf(step)
	if i < 0 {
		return false
	}
	t.steps = append(t.steps[:i], t.steps[i+1:]...)
	return true
}

// Decorate activates a plan-wide decoration on the traversal. Decorations
// are set by the plan builder before optimization and are never removed.
func (t *Traversal) Decorate(name string) {
	if !t.HasDecoration(name) {
		t.decorations = append(t.decorations, name)
	}
}

// HasDecoration reports whether the named plan-wide decoration is active.
func (t *Traversal) HasDecoration(name string) bool {
	for _, d := range t.decorations {
		if d == name {
			return true
		}
	}
	return false
}

// String renders the traversal in plan order, with the labels of each step
// appended as a @[a,b] suffix. The output is meant for logs and test
// failure messages.
func (t *Traversal) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, s := range t.steps {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.String())
		if labels := s.Labels(); len(labels) > 0 {
			fmt.Fprintf(&sb, "@[%s]", strings.Join(labels, ","))
		}
	}
	sb.WriteString("]")
	return sb.String()
}
