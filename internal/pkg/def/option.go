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

package def

// Rule names accepted by PlanOptimizeStrategy toggles.
const (
	RuleIdentityRemoval = "identityRemoval"
	RuleFilterRanking   = "filterRanking"
)

// TraversalOption carries the per-query knobs the planner consults while
// optimizing a traversal.
type TraversalOption struct {
	// Debug makes the planner report each applied rule and the rewritten
	// plan at info level.
	Debug                bool                  `json:"debug" yaml:"debug"`
	PlanOptimizeStrategy *PlanOptimizeStrategy `json:"planOptimizeStrategy,omitempty" yaml:"planOptimizeStrategy,omitempty"`
}

// PlanOptimizeStrategy switches individual optimization rules off. The
// zero value, and a nil strategy, leave every rule enabled.
type PlanOptimizeStrategy struct {
	DisableIdentityRemoval bool `json:"disableIdentityRemoval,omitempty" yaml:"disableIdentityRemoval,omitempty"`
	DisableFilterRanking   bool `json:"disableFilterRanking,omitempty" yaml:"disableFilterRanking,omitempty"`
}

// IsOptimizeEnabled reports whether the named rule may run. Unknown names
// are enabled so that adding a rule never requires a config migration.
func (p *PlanOptimizeStrategy) IsOptimizeEnabled(name string) bool {
	if p == nil {
		return true
	}
	switch name {
	case RuleIdentityRemoval:
		return !p.DisableIdentityRemoval
	case RuleFilterRanking:
		return !p.DisableFilterRanking
	default:
		return true
	}
}

// GetDefaultOption returns the option set used when a caller passes nil.
func GetDefaultOption() *TraversalOption {
	return &TraversalOption{
		Debug:                false,
		PlanOptimizeStrategy: &PlanOptimizeStrategy{},
	}
}
