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

package planner

import "github.com/lf-edge/egraph/pkg/ast"

// SubgraphRestriction is the plan-wide decoration a plan builder activates
// when the traversal runs against a restricted subgraph view. The view
// injects extra filters during execution, so ranking is worthwhile even
// when the written plan contains no filter step of its own.
const SubgraphRestriction = "subgraphRestriction"

// filterRanking reorders adjacent filter and order steps so that cheaper,
// more selective ones run first, and pushes step labels as far down the
// plan as possible so traverser state is kept only from the point a later
// step actually reads it by name.
//
// Every recognized filter/order kind has a fixed rank, see baseRank. A
// rank of 0 marks an opaque barrier: such steps are never moved and
// nothing moves across them, which confines reordering to contiguous runs
// of ranked steps. Two neighbors swap only when the left rank is strictly
// greater, so equal-rank neighbors keep their written order and the
// rewrite reaches a fixed point.
type filterRanking struct{}

func (r *filterRanking) name() string { return "filterRanking" }

func (r *filterRanking) priors() []string { return []string{"identityRemoval"} }

// shouldApply is true when the plan is decorated with a subgraph
// restriction, or any step at any nesting depth is rankable. Everything
// else is a plan the rule provably cannot change.
func (r *filterRanking) shouldApply(t *ast.Traversal) bool {
	return t.HasDecoration(SubgraphRestriction) ||
		ast.AnyStep(t, func(s ast.Step) bool { return baseRank(s) > 0 })
}

// apply transposes adjacent steps until no pair changes. After any
// migration or swap the scan restarts from the head, since a move can
// unlock pairs earlier in the plan.
func (r *filterRanking) apply(t *ast.Traversal) {
	modified := true
	for modified {
		modified = false
		for i := 0; i < t.Len()-1; i++ {
			step := t.StepAt(i)
			next := t.Successor(step)
			if usesLabels(next, step.Labels()) {
				continue
			}
			nextRank := stepRank(next)
			if nextRank == 0 {
				continue
			}
			if len(step.Labels()) > 0 {
				ast.MoveLabels(step, next)
				modified = true
			}
			if stepRank(step) > nextRank {
				t.Remove(next)
				t.InsertAt(i, next)
				modified = true
			}
		}
	}
}

// baseRank maps a step kind to its intrinsic cost rank. Higher ranks are
// more expensive to evaluate per traverser; 0 means the step takes no part
// in reordering. The table is total over StepKind: every kind outside the
// filter/order family falls through to 0.
func baseRank(step ast.Step) int {
	switch step.Kind() {
	case ast.KindIs, ast.KindTypeFilter:
		return 1
	case ast.KindHas:
		return 2
	case ast.KindWhere:
		if hasSubTraversals(step) {
			return 9
		}
		return 3
	case ast.KindSimplePath, ast.KindCyclicPath:
		return 4
	case ast.KindTraversalFilter, ast.KindNot:
		return 5
	case ast.KindWhereTraversal:
		return 6
	case ast.KindOr:
		return 7
	case ast.KindAnd:
		return 8
	case ast.KindDedup:
		return 10
	case ast.KindOrder:
		return 11
	default:
		return 0
	}
}

// stepRank is baseRank escalated for compound steps: a rankable step is at
// least as expensive as the most expensive step found anywhere inside its
// sub-traversals. An or() wrapping an order() costs like the order(). A
// step of rank 0 stays 0 regardless of content, barriers never become
// movable.
func stepRank(step ast.Step) int {
	rank := baseRank(step)
	if rank == 0 {
		return 0
	}
	c, ok := step.(ast.Compound)
	if !ok {
		return rank
	}
	for _, sub := range c.SubTraversals() {
		ast.WalkFunc(sub, func(s ast.Step) bool {
			if r := baseRank(s); r > rank {
				rank = r
			}
			return true
		})
	}
	return rank
}

func hasSubTraversals(step ast.Step) bool {
	c, ok := step.(ast.Compound)
	return ok && len(c.SubTraversals()) > 0
}

// usesLabels reports whether step, or anything nested inside it, may read
// one of the given labels. Steps holding opaque functions count as reading
// everything, including when labels is empty: an unanalyzable step pins
// its predecessor regardless of labels.
func usesLabels(step ast.Step, labels []string) bool {
	if readsLabels(step, labels) {
		return true
	}
	if c, ok := step.(ast.Compound); ok {
		for _, sub := range c.SubTraversals() {
			found := ast.AnyStep(sub, func(s ast.Step) bool {
				return readsLabels(s, labels)
			})
			if found {
				return true
			}
		}
	}
	return false
}

func readsLabels(step ast.Step, labels []string) bool {
	if _, ok := step.(ast.LambdaHolder); ok {
		return true
	}
	if sc, ok := step.(ast.Scoping); ok {
		keys := sc.ScopeKeys()
		for _, l := range labels {
			if keys[l] {
				return true
			}
		}
	}
	return false
}
