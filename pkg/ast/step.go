package ast

import "fmt"

// StepKind identifies the concrete kind of a traversal step. The set is
// closed: the planner switches on it exhaustively, and any kind outside the
// recognized filter/order family is treated as an opaque barrier that is
// never moved.
type StepKind int

const (
	// Navigation, mapping and side-effect steps.
	KindGraph StepKind = iota
	KindVertex
	KindProperties
	KindIdentity
	KindSelect
	KindCount
	KindRange
	KindFilterFunc
	KindScript
	// Filter and ordering steps, candidates for rank-based reordering.
	KindIs
	KindTypeFilter
	KindHas
	KindWhere
	KindSimplePath
	KindCyclicPath
	KindTraversalFilter
	KindNot
	KindWhereTraversal
	KindOr
	KindAnd
	KindDedup
	KindOrder
)

var kindNames = map[StepKind]string{
	KindGraph:           "graph",
	KindVertex:          "vertex",
	KindProperties:      "properties",
	KindIdentity:        "identity",
	KindSelect:          "select",
	KindCount:           "count",
	KindRange:           "range",
	KindFilterFunc:      "filterFunc",
	KindScript:          "script",
	KindIs:              "is",
	KindTypeFilter:      "typeFilter",
	KindHas:             "has",
	KindWhere:           "where",
	KindSimplePath:      "simplePath",
	KindCyclicPath:      "cyclicPath",
	KindTraversalFilter: "traversalFilter",
	KindNot:             "not",
	KindWhereTraversal:  "whereTraversal",
	KindOr:              "or",
	KindAnd:             "and",
	KindDedup:           "dedup",
	KindOrder:           "order",
}

func (k StepKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// Step is a single operation in a traversal. Every step carries an ordered
// set of distinct labels naming the traverser state produced at its
// position; the planner may hand labels over to a later step when that is
// provably safe.
type Step interface {
	Kind() StepKind
	// Labels returns the labels attached to the step in insertion order.
	// The returned slice is the live backing store and must not be mutated.
	Labels() []string
	// AddLabel attaches a label to the step. Duplicates are dropped.
	AddLabel(label string)
	// ClearLabels detaches every label from the step.
	ClearLabels()
	fmt.Stringer
	step()
}

// Compound is the capability of steps that carry nested sub-traversals,
// such as and/or/not and filter-by-traversal. The planner descends through
// SubTraversals whenever it walks or rewrites a plan.
type Compound interface {
	Step
	// SubTraversals returns the nested traversals in declaration order.
	SubTraversals() []*Traversal
}

// Scoping is the capability of steps that read traverser state by label
// name, such as select and keyed dedup.
type Scoping interface {
	Step
	// ScopeKeys returns the set of label names the step dereferences.
	ScopeKeys() map[string]bool
}

// LambdaHolder marks steps whose behavior is an opaque user-supplied
// function. Such steps cannot be analyzed, so the planner must assume they
// read every label in scope.
type LambdaHolder interface {
	Step
	lambdaHolder()
}

// baseStep supplies label bookkeeping and seals the Step interface. Every
// concrete step embeds it.
type baseStep struct {
	labels []string
}

func (b *baseStep) step() {}

func (b *baseStep) Labels() []string { return b.labels }

func (b *baseStep) AddLabel(label string) {
	for _, l := range b.labels {
		if l == label {
			return
		}
	}
	b.labels = append(b.labels, label)
}

func (b *baseStep) ClearLabels() { b.labels = nil }

// MoveLabels hands every label of from over to to, preserving insertion
// order and dropping labels to already carries. from ends up label-free.
func MoveLabels(from, to Step) {
	for _, l := range from.Labels() {
		to.AddLabel(l)
	}
	from.ClearLabels()
}

func scopeKeySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// Direction selects which incident edges a vertex step follows.
type Direction int

const (
	DirectionOut Direction = iota
	DirectionIn
	DirectionBoth
)

func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "out"
	case DirectionIn:
		return "in"
	case DirectionBoth:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ElementKind names the graph element type a step emits or filters.
type ElementKind int

const (
	ElementVertex ElementKind = iota
	ElementEdge
	ElementProperty
)

func (e ElementKind) String() string {
	switch e {
	case ElementVertex:
		return "vertex"
	case ElementEdge:
		return "edge"
	case ElementProperty:
		return "property"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(e))
	}
}
