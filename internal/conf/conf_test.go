// Copyright 2024-2025 EMQ Technologies Co., Ltd.
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

package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lf-edge/egraph/internal/pkg/def"
)

func TestLoadConfigFromPath(t *testing.T) {
	c := &EgraphConf{}
	err := LoadConfigFromPath("testdata/egraph.yaml", c)
	require.NoError(t, err)

	assert.False(t, c.Basic.Debug)
	assert.True(t, c.Basic.ConsoleLog)
	assert.Equal(t, 24, c.Basic.RotateTime)
	assert.Equal(t, 72, c.Basic.MaxAge)

	require.NotNil(t, c.Optimizer)
	assert.True(t, c.Optimizer.Debug)
	require.NotNil(t, c.Optimizer.PlanOptimizeStrategy)
	assert.False(t, c.Optimizer.PlanOptimizeStrategy.IsOptimizeEnabled(def.RuleFilterRanking))
	assert.True(t, c.Optimizer.PlanOptimizeStrategy.IsOptimizeEnabled(def.RuleIdentityRemoval))
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("EGRAPH__BASIC__DEBUG", "true")
	t.Setenv("EGRAPH__BASIC__ROTATETIME", "12")
	t.Setenv("EGRAPH__OPTIMIZER__PLANOPTIMIZESTRATEGY__DISABLEIDENTITYREMOVAL", "true")

	c := &EgraphConf{}
	err := LoadConfigFromPath("testdata/egraph.yaml", c)
	require.NoError(t, err)

	assert.True(t, c.Basic.Debug)
	assert.Equal(t, 12, c.Basic.RotateTime)
	require.NotNil(t, c.Optimizer)
	assert.False(t, c.Optimizer.PlanOptimizeStrategy.IsOptimizeEnabled(def.RuleIdentityRemoval))
	// values the environment does not name keep their file settings
	assert.False(t, c.Optimizer.PlanOptimizeStrategy.IsOptimizeEnabled(def.RuleFilterRanking))
}

func TestBasicConfValidate(t *testing.T) {
	bc := &BasicConf{RotateTime: -1, MaxAge: -2}
	err := bc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rotateTime")
	assert.Contains(t, err.Error(), "maxAge")
	assert.Equal(t, 24, bc.RotateTime)
	assert.Equal(t, 72, bc.MaxAge)

	bc = &BasicConf{}
	require.NoError(t, bc.Validate())
	assert.Equal(t, 24, bc.RotateTime)
	assert.Equal(t, 72, bc.MaxAge)

	bc = &BasicConf{RotateTime: 6, MaxAge: 12}
	require.NoError(t, bc.Validate())
	assert.Equal(t, 6, bc.RotateTime)
	assert.Equal(t, 12, bc.MaxAge)
}

func TestInitConf(t *testing.T) {
	t.Setenv(EgraphBaseKey, "testdata")
	InitConf()

	require.NotNil(t, Config)
	assert.True(t, Config.Basic.ConsoleLog)
	assert.Equal(t, 24, Config.Basic.RotateTime)
	// omitted values fall back to defaults via validation
	assert.Equal(t, 72, Config.Basic.MaxAge)
	// an absent optimizer section keeps the built-in default option
	require.NotNil(t, Config.Optimizer)
	assert.True(t, Config.Optimizer.PlanOptimizeStrategy.IsOptimizeEnabled(def.RuleFilterRanking))
}

func TestClockIsMockWhenTesting(t *testing.T) {
	assert.True(t, IsTesting)
	start := Clock.Now()
	assert.Equal(t, start, Clock.Now())
}
