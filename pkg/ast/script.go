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

	"github.com/dop251/goja"
)

// ScriptFilterStep filters traversers with a JavaScript predicate. The
// script must define a function "exec" taking the traverser value and
// returning a truthy result to keep it. Like FilterFuncStep, the step is
// opaque to the planner.
type ScriptFilterStep struct {
	baseStep
	Source string
	vm     *goja.Runtime
	jsfunc goja.Callable
}

// NewScriptFilterStep compiles script and binds its exec function. The vm
// is owned by the step and must not be shared across goroutines.
func NewScriptFilterStep(script string) (*ScriptFilterStep, error) {
	vm := goja.New()
	_, err := vm.RunString(script)
	if err != nil {
		return nil, fmt.Errorf("failed to interprete script: %v", err)
	}
	exec, ok := goja.AssertFunction(vm.Get("exec"))
	if !ok {
		return nil, fmt.Errorf("cannot find function \"exec\" in script")
	}
	return &ScriptFilterStep{
		Source: script,
		vm:     vm,
		jsfunc: exec,
	}, nil
}

func (s *ScriptFilterStep) Kind() StepKind { return KindScript }

func (s *ScriptFilterStep) lambdaHolder() {}

func (s *ScriptFilterStep) String() string { return "script(filter)" }

// Test evaluates the predicate against one traverser value.
func (s *ScriptFilterStep) Test(value interface{}) (bool, error) {
	val, err := s.jsfunc(goja.Undefined(), s.vm.ToValue(value))
	if err != nil {
		return false, fmt.Errorf("failed to execute script: %v", err)
	}
	return val.ToBoolean(), nil
}
