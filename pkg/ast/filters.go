// Copyright 2023-2025 EMQ Technologies Co., Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"fmt"
	"strings"
)

// IsStep keeps traversers whose current value equals Value.
type IsStep struct {
	baseStep
	Value interface{}
}

func NewIsStep(value interface{}) *IsStep {
	return &IsStep{Value: value}
}

func (s *IsStep) Kind() StepKind { return KindIs }

func (s *IsStep) String() string { return fmt.Sprintf("is(%v)", s.Value) }

// TypeFilterStep keeps traversers positioned on the given element kind.
type TypeFilterStep struct {
	baseStep
	Element ElementKind
}

func NewTypeFilterStep(element ElementKind) *TypeFilterStep {
	return &TypeFilterStep{Element: element}
}

func (s *TypeFilterStep) Kind() StepKind { return KindTypeFilter }

func (s *TypeFilterStep) String() string { return fmt.Sprintf("typeFilter(%s)", s.Element) }

// HasStep keeps elements carrying the property Key, and when Value is
// non-nil, carrying it with that value.
type HasStep struct {
	baseStep
	Key   string
	Value interface{}
}

func NewHasStep(key string, value interface{}) *HasStep {
	return &HasStep{Key: key, Value: value}
}

func (s *HasStep) Kind() StepKind { return KindHas }

func (s *HasStep) String() string {
	if s.Value == nil {
		return fmt.Sprintf("has(%s)", s.Key)
	}
	return fmt.Sprintf("has(%s,%v)", s.Key, s.Value)
}

// WhereStep compares the traverser state named StartKey against the state
// named OtherKey. An empty StartKey means the comparison starts from the
// current value. By sub-traversals, when present, project each side before
// the comparison and make the step considerably more expensive.
type WhereStep struct {
	baseStep
	StartKey string
	OtherKey string
	By       []*Traversal
}

func NewWhereStep(startKey, otherKey string, by ...*Traversal) *WhereStep {
	return &WhereStep{StartKey: startKey, OtherKey: otherKey, By: by}
}

func (s *WhereStep) Kind() StepKind { return KindWhere }

func (s *WhereStep) ScopeKeys() map[string]bool {
	keys := make(map[string]bool, 2)
	if s.StartKey != "" {
		keys[s.StartKey] = true
	}
	if s.OtherKey != "" {
		keys[s.OtherKey] = true
	}
	return keys
}

func (s *WhereStep) SubTraversals() []*Traversal { return s.By }

func (s *WhereStep) String() string {
	if s.StartKey == "" {
		return fmt.Sprintf("where(eq(%s))", s.OtherKey)
	}
	return fmt.Sprintf("where(%s,eq(%s))", s.StartKey, s.OtherKey)
}

// PathFilterStep keeps traversers whose walked path is acyclic, or cyclic
// when Cyclic is set.
type PathFilterStep struct {
	baseStep
	Cyclic bool
}

func NewSimplePathStep() *PathFilterStep { return &PathFilterStep{} }

func NewCyclicPathStep() *PathFilterStep { return &PathFilterStep{Cyclic: true} }

func (s *PathFilterStep) Kind() StepKind {
	if s.Cyclic {
		return KindCyclicPath
	}
	return KindSimplePath
}

func (s *PathFilterStep) String() string {
	if s.Cyclic {
		return "cyclicPath()"
	}
	return "simplePath()"
}

// TraversalFilterStep keeps traversers for which the filter sub-traversal
// yields at least one result.
type TraversalFilterStep struct {
	baseStep
	Filter *Traversal
}

func NewTraversalFilterStep(filter *Traversal) *TraversalFilterStep {
	return &TraversalFilterStep{Filter: filter}
}

func (s *TraversalFilterStep) Kind() StepKind { return KindTraversalFilter }

func (s *TraversalFilterStep) SubTraversals() []*Traversal { return []*Traversal{s.Filter} }

func (s *TraversalFilterStep) String() string { return fmt.Sprintf("filter(%s)", s.Filter) }

// NotStep keeps traversers for which the inner sub-traversal yields no
// result.
type NotStep struct {
	baseStep
	Filter *Traversal
}

func NewNotStep(filter *Traversal) *NotStep {
	return &NotStep{Filter: filter}
}

func (s *NotStep) Kind() StepKind { return KindNot }

func (s *NotStep) SubTraversals() []*Traversal { return []*Traversal{s.Filter} }

func (s *NotStep) String() string { return fmt.Sprintf("not(%s)", s.Filter) }

// WhereTraversalStep keeps traversers for which the anchored filter
// sub-traversal yields at least one result. Unlike WhereStep it reads no
// named state itself; any label reads live inside the sub-traversal.
type WhereTraversalStep struct {
	baseStep
	Filter *Traversal
}

func NewWhereTraversalStep(filter *Traversal) *WhereTraversalStep {
	return &WhereTraversalStep{Filter: filter}
}

func (s *WhereTraversalStep) Kind() StepKind { return KindWhereTraversal }

func (s *WhereTraversalStep) SubTraversals() []*Traversal { return []*Traversal{s.Filter} }

func (s *WhereTraversalStep) String() string { return fmt.Sprintf("where(%s)", s.Filter) }

// OrStep keeps traversers passing at least one branch.
type OrStep struct {
	baseStep
	Branches []*Traversal
}

func NewOrStep(branches ...*Traversal) *OrStep {
	return &OrStep{Branches: branches}
}

func (s *OrStep) Kind() StepKind { return KindOr }

func (s *OrStep) SubTraversals() []*Traversal { return s.Branches }

func (s *OrStep) String() string { return branchString("or", s.Branches) }

// AndStep keeps traversers passing every branch.
type AndStep struct {
	baseStep
	Branches []*Traversal
}

func NewAndStep(branches ...*Traversal) *AndStep {
	return &AndStep{Branches: branches}
}

func (s *AndStep) Kind() StepKind { return KindAnd }

func (s *AndStep) SubTraversals() []*Traversal { return s.Branches }

func (s *AndStep) String() string { return branchString("and", s.Branches) }

func branchString(name string, branches []*Traversal) string {
	parts := make([]string, 0, len(branches))
	for _, b := range branches {
		parts = append(parts, b.String())
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ","))
}

// DedupStep drops traversers that repeat a value already seen. With Keys
// set, the deduplication value is drawn from the named traverser state
// instead of the current value.
type DedupStep struct {
	baseStep
	Keys []string
}

func NewDedupStep(keys ...string) *DedupStep {
	return &DedupStep{Keys: keys}
}

func (s *DedupStep) Kind() StepKind { return KindDedup }

func (s *DedupStep) ScopeKeys() map[string]bool { return scopeKeySet(s.Keys) }

func (s *DedupStep) String() string {
	return fmt.Sprintf("dedup(%s)", strings.Join(s.Keys, ","))
}

// SortKey is one ordering criterion of an OrderStep. An empty Key sorts by
// the current value.
type SortKey struct {
	Key  string
	Desc bool
}

func (k SortKey) String() string {
	dir := "asc"
	if k.Desc {
		dir = "desc"
	}
	if k.Key == "" {
		return dir
	}
	return k.Key + " " + dir
}

// OrderStep is a full barrier that sorts all traversers. It is the most
// expensive reorderable step: every traverser must arrive before any can
// leave.
type OrderStep struct {
	baseStep
	By []SortKey
}

func NewOrderStep(by ...SortKey) *OrderStep {
	return &OrderStep{By: by}
}

func (s *OrderStep) Kind() StepKind { return KindOrder }

func (s *OrderStep) String() string {
	parts := make([]string, 0, len(s.By))
	for _, k := range s.By {
		parts = append(parts, k.String())
	}
	return fmt.Sprintf("order(%s)", strings.Join(parts, ","))
}
