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

import (
	"github.com/lf-edge/egraph/internal/conf"
	"github.com/lf-edge/egraph/internal/pkg/def"
	"github.com/lf-edge/egraph/pkg/ast"
)

var optRuleList = []optRule{
	&identityRemoval{},
	&filterRanking{},
}

// Optimize runs every enabled optimization rule over t. Rules run in
// registration order, adjusted so that declared priors always run first;
// each rule rewrites the root before the traversals nested beneath it.
// The caller keeps exclusive access to t for the duration of the call.
func Optimize(t *ast.Traversal, option *def.TraversalOption) {
	if option == nil {
		option = def.GetDefaultOption()
	}
	start := conf.Clock.Now()
	for _, rule := range sortRules(optRuleList) {
		if !option.PlanOptimizeStrategy.IsOptimizeEnabled(rule.name()) {
			conf.Log.Debugf("optimization rule %s is disabled", rule.name())
			continue
		}
		if !rule.shouldApply(t) {
			continue
		}
		applyRule(rule, t)
		if option.Debug {
			conf.Log.Infof("applied rule %s: %s", rule.name(), t)
		}
	}
	conf.Log.Debugf("optimized traversal in %v: %s", conf.Clock.Since(start), t)
}

// applyRule rewrites t, then every traversal nested beneath it, parent
// first. Ranging over Steps after apply is safe: rules only rearrange the
// top level, they never detach sub-traversals.
func applyRule(rule optRule, t *ast.Traversal) {
	rule.apply(t)
	for _, s := range t.Steps() {
		if c, ok := s.(ast.Compound); ok {
			for _, sub := range c.SubTraversals() {
				applyRule(rule, sub)
			}
		}
	}
}

// sortRules orders rules so every rule runs after its declared priors,
// keeping registration order between independent rules. The rule list is
// fixed at compile time, so an unknown or cyclic prior is a programming
// error and panics.
func sortRules(rules []optRule) []optRule {
	byName := make(map[string]optRule, len(rules))
	for _, r := range rules {
		byName[r.name()] = r
	}
	const (
		visiting = 1
		placed   = 2
	)
	state := make(map[string]int, len(rules))
	sorted := make([]optRule, 0, len(rules))
	var place func(r optRule)
	place = func(r optRule) {
		switch state[r.name()] {
		case placed:
			return
		case visiting:
			panic("cycle in optimization rule priors at " + r.name())
		}
		state[r.name()] = visiting
		for _, p := range r.priors() {
			prior, ok := byName[p]
			if !ok {
				panic("unknown prior optimization rule " + p)
			}
			place(prior)
		}
		state[r.name()] = placed
		sorted = append(sorted, r)
	}
	for _, r := range rules {
		place(r)
	}
	return sorted
}
