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

// Visitor is called for each step reached by Walk. Returning false stops
// the walk immediately.
type Visitor interface {
	Visit(Step) bool
}

// Walk traverses t depth-first in plan order, visiting every step at every
// nesting depth. A parent compound step is visited before the steps of its
// sub-traversals; sub-traversals run in declaration order. Walk reports
// whether the traversal ran to completion without the visitor cutting it
// short.
func Walk(t *Traversal, v Visitor) bool {
	if t == nil {
		return true
	}
	for _, s := range t.steps {
		if !v.Visit(s) {
			return false
		}
		if c, ok := s.(Compound); ok {
			for _, sub := range c.SubTraversals() {
				if !Walk(sub, v) {
					return false
				}
			}
		}
	}
	return true
}

// WalkFunc adapts a plain function to Walk.
func WalkFunc(t *Traversal, visit func(Step) bool) bool {
	return Walk(t, walkFuncVisitor(visit))
}

type walkFuncVisitor func(Step) bool

func (f walkFuncVisitor) Visit(s Step) bool { return f(s) }

// AnyStep reports whether any step of t, at any nesting depth, satisfies
// pred.
func AnyStep(t *Traversal, pred func(Step) bool) bool {
	return !WalkFunc(t, func(s Step) bool { return !pred(s) })
}

// StepsOfKind returns the top-level steps of t with the given kind, in plan
// order. Nested sub-traversals are not searched.
func StepsOfKind(t *Traversal, kind StepKind) []Step {
	var steps []Step
	for _, s := range t.steps {
		if s.Kind() == kind {
			steps = append(steps, s)
		}
	}
	return steps
}
