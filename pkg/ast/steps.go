package ast

import (
	"fmt"
	"strings"
)

// GraphStep starts a traversal from the graph, emitting every element of
// the given kind or only those with the given ids.
type GraphStep struct {
	baseStep
	Element ElementKind
	IDs     []interface{}
}

func NewGraphStep(element ElementKind, ids ...interface{}) *GraphStep {
	return &GraphStep{Element: element, IDs: ids}
}

func (s *GraphStep) Kind() StepKind { return KindGraph }

func (s *GraphStep) String() string {
	name := "V"
	if s.Element == ElementEdge {
		name = "E"
	}
	if len(s.IDs) == 0 {
		return name + "()"
	}
	parts := make([]string, 0, len(s.IDs))
	for _, id := range s.IDs {
		parts = append(parts, fmt.Sprintf("%v", id))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ","))
}

// VertexStep walks from the current element to adjacent vertices over the
// given edge labels, in the given direction.
type VertexStep struct {
	baseStep
	Direction  Direction
	EdgeLabels []string
}

func NewVertexStep(direction Direction, edgeLabels ...string) *VertexStep {
	return &VertexStep{Direction: direction, EdgeLabels: edgeLabels}
}

func (s *VertexStep) Kind() StepKind { return KindVertex }

func (s *VertexStep) String() string {
	return fmt.Sprintf("%s(%s)", s.Direction, strings.Join(s.EdgeLabels, ","))
}

// PropertiesStep maps the current element to its property values.
type PropertiesStep struct {
	baseStep
	Keys []string
}

func NewPropertiesStep(keys ...string) *PropertiesStep {
	return &PropertiesStep{Keys: keys}
}

func (s *PropertiesStep) Kind() StepKind { return KindProperties }

func (s *PropertiesStep) String() string {
	return fmt.Sprintf("values(%s)", strings.Join(s.Keys, ","))
}

// IdentityStep passes every traverser through unchanged. Plan builders
// emit it as an anchor for labels; the identity removal rule strips it out
// again.
type IdentityStep struct {
	baseStep
}

func NewIdentityStep() *IdentityStep { return &IdentityStep{} }

func (s *IdentityStep) Kind() StepKind { return KindIdentity }

func (s *IdentityStep) String() string { return "identity()" }

// SelectStep projects previously labeled traverser state back into the
// stream, optionally transformed by one by sub-traversal per key.
type SelectStep struct {
	baseStep
	Keys []string
	By   []*Traversal
}

func NewSelectStep(keys ...string) *SelectStep {
	return &SelectStep{Keys: keys}
}

func (s *SelectStep) Kind() StepKind { return KindSelect }

func (s *SelectStep) ScopeKeys() map[string]bool { return scopeKeySet(s.Keys) }

func (s *SelectStep) SubTraversals() []*Traversal { return s.By }

func (s *SelectStep) String() string {
	return fmt.Sprintf("select(%s)", strings.Join(s.Keys, ","))
}

// CountStep reduces the stream to the number of traversers.
type CountStep struct {
	baseStep
}

func NewCountStep() *CountStep { return &CountStep{} }

func (s *CountStep) Kind() StepKind { return KindCount }

func (s *CountStep) String() string { return "count()" }

// RangeStep keeps the traversers positioned in [Low, High). A High of -1
// leaves the range unbounded above.
type RangeStep struct {
	baseStep
	Low  int64
	High int64
}

func NewRangeStep(low, high int64) *RangeStep {
	return &RangeStep{Low: low, High: high}
}

func (s *RangeStep) Kind() StepKind { return KindRange }

func (s *RangeStep) String() string { return fmt.Sprintf("range(%d,%d)", s.Low, s.High) }

// FilterFunc decides whether a traverser value passes a FilterFuncStep.
type FilterFunc func(value interface{}) bool

// FilterFuncStep filters with a native predicate. The planner cannot see
// inside the function, so the step is opaque to every rewrite.
type FilterFuncStep struct {
	baseStep
	Fn FilterFunc
}

func NewFilterFuncStep(fn FilterFunc) *FilterFuncStep {
	return &FilterFuncStep{Fn: fn}
}

func (s *FilterFuncStep) Kind() StepKind { return KindFilterFunc }

func (s *FilterFuncStep) lambdaHolder() {}

func (s *FilterFuncStep) String() string { return "filter(func)" }
