// Copyright 2024 EMQ Technologies Co., Ltd.
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

// identityRemoval strips identity steps out of a plan, handing their
// labels back to the preceding step. Plan builders emit identity steps as
// label anchors; once the labels are rehomed the steps carry no meaning.
// A labeled identity at the head of a plan is kept, there is no earlier
// step to take its labels.
type identityRemoval struct{}

func (r *identityRemoval) name() string { return "identityRemoval" }

func (r *identityRemoval) priors() []string { return nil }

func (r *identityRemoval) shouldApply(t *ast.Traversal) bool {
	return ast.AnyStep(t, func(s ast.Step) bool { return s.Kind() == ast.KindIdentity })
}

func (r *identityRemoval) apply(t *ast.Traversal) {
	if t.Len() <= 1 {
		return
	}
	for _, s := range ast.StepsOfKind(t, ast.KindIdentity) {
		i := t.IndexOf(s)
		if i == 0 && len(s.Labels()) > 0 {
			continue
		}
		if i > 0 {
			ast.MoveLabels(s, t.StepAt(i-1))
		}
		t.Remove(s)
	}
}
