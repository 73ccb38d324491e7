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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lf-edge/egraph/pkg/ast"
)

func truthy(interface{}) bool { return true }

func mustScriptStep(t *testing.T) *ast.ScriptFilterStep {
	t.Helper()
	s, err := ast.NewScriptFilterStep(`function exec(v) { return true; }`)
	require.NoError(t, err)
	return s
}

func TestStepRank(t *testing.T) {
	modulatedSelect := ast.NewSelectStep("a")
	modulatedSelect.By = []*ast.Traversal{ast.NewTraversal(ast.NewOrderStep())}

	tests := []struct {
		name string
		step ast.Step
		rank int
	}{
		{"graph", ast.NewGraphStep(ast.ElementVertex), 0},
		{"vertex", ast.NewVertexStep(ast.DirectionOut), 0},
		{"identity", ast.NewIdentityStep(), 0},
		{"select", ast.NewSelectStep("a"), 0},
		{"count", ast.NewCountStep(), 0},
		{"range", ast.NewRangeStep(0, 10), 0},
		{"filter func", ast.NewFilterFuncStep(truthy), 0},
		{"is", ast.NewIsStep(27), 1},
		{"type filter", ast.NewTypeFilterStep(ast.ElementVertex), 1},
		{"has", ast.NewHasStep("age", 32), 2},
		{"where by keys", ast.NewWhereStep("a", "b"), 3},
		{"simple path", ast.NewSimplePathStep(), 4},
		{"cyclic path", ast.NewCyclicPathStep(), 4},
		{
			"traversal filter",
			ast.NewTraversalFilterStep(ast.NewTraversal(ast.NewVertexStep(ast.DirectionOut))),
			5,
		},
		{"not", ast.NewNotStep(ast.NewTraversal(ast.NewHasStep("x", nil))), 5},
		{
			"where traversal",
			ast.NewWhereTraversalStep(ast.NewTraversal(ast.NewVertexStep(ast.DirectionOut))),
			6,
		},
		{
			"or",
			ast.NewOrStep(
				ast.NewTraversal(ast.NewHasStep("a", nil)),
				ast.NewTraversal(ast.NewHasStep("b", nil)),
			),
			7,
		},
		{"and", ast.NewAndStep(ast.NewTraversal(ast.NewIsStep(1))), 8},
		{
			"where modulated",
			ast.NewWhereStep("a", "b", ast.NewTraversal(ast.NewPropertiesStep("age"))),
			9,
		},
		{"dedup", ast.NewDedupStep(), 10},
		{"order", ast.NewOrderStep(), 11},
		{
			"or lifts to inner order",
			ast.NewOrStep(
				ast.NewTraversal(ast.NewHasStep("a", nil)),
				ast.NewTraversal(ast.NewOrderStep()),
			),
			11,
		},
		{
			"not lifts to inner dedup",
			ast.NewNotStep(ast.NewTraversal(ast.NewDedupStep())),
			10,
		},
		{
			"escalation pierces unranked nesting",
			ast.NewAndStep(ast.NewTraversal(modulatedSelect)),
			11,
		},
		{
			"barrier stays a barrier regardless of content",
			modulatedSelect,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rank, stepRank(tt.step))
		})
	}
}

func TestBaseRankIgnoresContent(t *testing.T) {
	n := ast.NewNotStep(ast.NewTraversal(ast.NewOrderStep()))
	assert.Equal(t, 5, baseRank(n))
	assert.Equal(t, 11, stepRank(n))
}

func TestUsesLabels(t *testing.T) {
	labels := []string{"a", "b"}
	tests := []struct {
		name   string
		step   ast.Step
		labels []string
		uses   bool
	}{
		{"scoping hit", ast.NewSelectStep("b"), labels, true},
		{"scoping miss", ast.NewSelectStep("c"), labels, false},
		{"where start key", ast.NewWhereStep("a", ""), labels, true},
		{"dedup over label", ast.NewDedupStep("b"), labels, true},
		{"dedup bare", ast.NewDedupStep(), labels, false},
		// has() reads a property key, not a label
		{"property filter", ast.NewHasStep("a", nil), labels, false},
		{"lambda reads everything", ast.NewFilterFuncStep(truthy), labels, true},
		{"lambda with no labels in play", ast.NewFilterFuncStep(truthy), nil, true},
		{"script lambda", mustScriptStep(t), nil, true},
		{
			"nested hit",
			ast.NewAndStep(ast.NewTraversal(
				ast.NewVertexStep(ast.DirectionOut),
				ast.NewSelectStep("a"),
			)),
			labels,
			true,
		},
		{
			"nested miss",
			ast.NewAndStep(ast.NewTraversal(ast.NewSelectStep("c"))),
			labels,
			false,
		},
		{
			"deeply nested lambda",
			ast.NewNotStep(ast.NewTraversal(
				ast.NewNotStep(ast.NewTraversal(ast.NewFilterFuncStep(truthy))),
			)),
			nil,
			true,
		},
		{"no labels and no lambda", ast.NewSelectStep("a"), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.uses, usesLabels(tt.step, tt.labels))
		})
	}
}

func TestFilterRankingShouldApply(t *testing.T) {
	r := &filterRanking{}

	bare := ast.NewTraversal(
		ast.NewGraphStep(ast.ElementVertex),
		ast.NewVertexStep(ast.DirectionOut),
		ast.NewCountStep(),
	)
	assert.False(t, r.shouldApply(bare))

	decorated := ast.NewTraversal(ast.NewGraphStep(ast.ElementVertex))
	decorated.Decorate(SubgraphRestriction)
	assert.True(t, r.shouldApply(decorated))

	flat := ast.NewTraversal(ast.NewGraphStep(ast.ElementVertex), ast.NewHasStep("age", 32))
	assert.True(t, r.shouldApply(flat))

	// a rankable step buried inside an unranked compound still qualifies
	sel := ast.NewSelectStep("a")
	sel.By = []*ast.Traversal{ast.NewTraversal(ast.NewIsStep(1))}
	nested := ast.NewTraversal(ast.NewGraphStep(ast.ElementVertex), sel)
	assert.True(t, r.shouldApply(nested))

	opaque := ast.NewTraversal(
		ast.NewGraphStep(ast.ElementVertex),
		ast.NewFilterFuncStep(truthy),
	)
	assert.False(t, r.shouldApply(opaque))

	// forcing apply onto an inapplicable plan must change nothing
	before := bare.String()
	r.apply(bare)
	assert.Equal(t, before, bare.String())
}

func TestFilterRankingApply(t *testing.T) {
	r := &filterRanking{}

	t.Run("orders by rank", func(t *testing.T) {
		order := ast.NewOrderStep()
		dedup := ast.NewDedupStep()
		tr := ast.NewTraversal(order, dedup)

		r.apply(tr)
		assert.Equal(t, []ast.Step{dedup, order}, tr.Steps())
	})

	t.Run("cascade across rescans", func(t *testing.T) {
		dedup := ast.NewDedupStep()
		filter := ast.NewTraversalFilterStep(ast.NewTraversal(ast.NewVertexStep(ast.DirectionOut)))
		has := ast.NewHasStep("age", 32)
		tr := ast.NewTraversal(dedup, filter, has)

		r.apply(tr)
		assert.Equal(t, []ast.Step{has, filter, dedup}, tr.Steps())
	})

	t.Run("compound rank escalation", func(t *testing.T) {
		or := ast.NewOrStep(
			ast.NewTraversal(ast.NewHasStep("name", nil)),
			ast.NewTraversal(ast.NewOrderStep()),
		)
		has := ast.NewHasStep("age", 32)
		tr := ast.NewTraversal(or, has)

		r.apply(tr)
		assert.Equal(t, []ast.Step{has, or}, tr.Steps())
	})

	t.Run("barriers confine reordering", func(t *testing.T) {
		has := ast.NewHasStep("age", 32)
		out1 := ast.NewVertexStep(ast.DirectionOut)
		order := ast.NewOrderStep()
		dedup := ast.NewDedupStep()
		out2 := ast.NewVertexStep(ast.DirectionOut)
		is := ast.NewIsStep(1)
		tr := ast.NewTraversal(has, out1, order, dedup, out2, is)

		r.apply(tr)
		// order/dedup swap inside their run; is() never crosses out()
		assert.Equal(t, []ast.Step{has, out1, dedup, order, out2, is}, tr.Steps())
	})

	t.Run("equal ranks keep written order", func(t *testing.T) {
		has1 := ast.NewHasStep("a", nil)
		has2 := ast.NewHasStep("b", nil)
		tr := ast.NewTraversal(has1, has2)

		r.apply(tr)
		assert.Equal(t, []ast.Step{has1, has2}, tr.Steps())
	})

	t.Run("label read blocks move and migration", func(t *testing.T) {
		order := ast.NewOrderStep()
		order.AddLabel("a")
		dedup := ast.NewDedupStep("a")
		tr := ast.NewTraversal(order, dedup)

		r.apply(tr)
		assert.Equal(t, []ast.Step{order, dedup}, tr.Steps())
		assert.Equal(t, []string{"a"}, order.Labels())
	})

	t.Run("label migrates without a swap", func(t *testing.T) {
		v := ast.NewGraphStep(ast.ElementVertex)
		v.AddLabel("a")
		has := ast.NewHasStep("age", 32)
		tr := ast.NewTraversal(v, has)

		r.apply(tr)
		assert.Equal(t, []ast.Step{v, has}, tr.Steps())
		assert.Empty(t, v.Labels())
		assert.Equal(t, []string{"a"}, has.Labels())
	})

	t.Run("labels ride to the end of the run", func(t *testing.T) {
		v := ast.NewGraphStep(ast.ElementVertex)
		v.AddLabel("a")
		has := ast.NewHasStep("age", 32)
		is := ast.NewIsStep(1)
		tr := ast.NewTraversal(v, has, is)

		r.apply(tr)
		assert.Equal(t, []ast.Step{v, is, has}, tr.Steps())
		assert.Empty(t, v.Labels())
		assert.Empty(t, is.Labels())
		assert.Equal(t, []string{"a"}, has.Labels())
	})

	t.Run("opaque successor pins its predecessor", func(t *testing.T) {
		has := ast.NewHasStep("age", 32)
		has.AddLabel("a")
		fn := ast.NewFilterFuncStep(truthy)
		tr := ast.NewTraversal(has, fn)

		r.apply(tr)
		assert.Equal(t, []ast.Step{has, fn}, tr.Steps())
		assert.Equal(t, []string{"a"}, has.Labels())
	})

	t.Run("labels never land on a barrier", func(t *testing.T) {
		has := ast.NewHasStep("age", 32)
		has.AddLabel("x")
		sel := ast.NewSelectStep("y")
		tr := ast.NewTraversal(has, sel)

		r.apply(tr)
		assert.Equal(t, []ast.Step{has, sel}, tr.Steps())
		assert.Equal(t, []string{"x"}, has.Labels())
	})
}

func TestFilterRankingFixedPoint(t *testing.T) {
	r := &filterRanking{}
	dedup := ast.NewDedupStep()
	filter := ast.NewTraversalFilterStep(ast.NewTraversal(ast.NewVertexStep(ast.DirectionOut)))
	has := ast.NewHasStep("age", 32)
	v := ast.NewGraphStep(ast.ElementVertex)
	v.AddLabel("a")
	tr := ast.NewTraversal(v, dedup, filter, has)

	before := []ast.Step{v, dedup, filter, has}
	r.apply(tr)
	once := tr.String()
	// same steps, new order, nothing lost or invented
	assert.ElementsMatch(t, before, tr.Steps())

	r.apply(tr)
	assert.Equal(t, once, tr.String())
}
