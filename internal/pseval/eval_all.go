// Copyright 2026 The Psconf Authors
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

package pseval

import (
	"go.uber.org/atomic"

	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/pslog"
	"github.com/maurerpe-go/psconf/internal/psload"
	"github.com/maurerpe-go/psconf/internal/psval"
)

// MaxIterations is the hard bound on total evaluations per run (spec
// §4.5's "safety net"): exceeding it aborts the run with CycleSuspected
// rather than looping forever on a circular dependency.
const MaxIterations = 100_000

type queueItem struct {
	scope, setting string
}

// EvalAll implements spec §6's evalAll operation: given a loaded printer
// and a user-override settings bundle, produce the fully resolved bundle.
// logger receives a Warn for every TypeMismatch and soft UnknownName
// encountered along the way; nil is treated as a no-op logger.
func EvalAll(printer *psload.Printer, overrides *psval.Value, logger pslog.Logger) (*psval.Value, error) {
	logger = nilZapLogger(logger)

	ctx, err := newContext(printer, overrides)
	if err != nil {
		return nil, err
	}

	queue := make([]queueItem, 0, 64)
	queued := make(map[queueItem]bool)

	enqueue := func(scope, setting string) {
		if ctx.isHardPinned(scope, setting) {
			return
		}
		item := queueItem{scope, setting}
		if queued[item] {
			return
		}
		queued[item] = true
		queue = append(queue, item)
	}

	for _, scope := range printer.ScopeOrder() {
		scopeObj, _ := printer.Root().GetMember(scope)
		set, _ := scopeObj.GetMember("#set")
		set.Members(func(name string, props *psval.Value) bool {
			if _, ok := props.GetMember("#eval"); ok {
				enqueue(scope, name)
			}
			return true
		})
	}

	counter := atomic.NewInt64(0)
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		delete(queued, item) // no longer in flight; a later trigger may re-enqueue it

		if counter.Inc() > MaxIterations {
			return nil, pserrors.New(pserrors.CycleSuspected, []string{item.scope, item.setting}, "exceeded %d evaluations", MaxIterations)
		}

		props, ok := printer.SettingProperties(item.scope, item.setting)
		if !ok {
			continue
		}
		evalTree, ok := props.GetMember("#eval")
		if !ok {
			continue
		}

		ctx.push(item.scope)
		result, err := evalExpr(ctx, evalTree)
		ctx.pop()

		if err != nil {
			logger.Warn("setting evaluation failed: " + err.Error())
			continue
		}

		applyResult(ctx, item.scope, item.setting, props, result, logger)

		if trig, ok := props.GetMember("#trigger"); ok {
			trig.Members(func(scope2 string, inner *psval.Value) bool {
				inner.Members(func(setting2 string, _ *psval.Value) bool {
					enqueue(scope2, setting2)
					return true
				})
				return true
			})
		}
	}

	return ctx.over, nil
}

// applyResult implements spec §4.5 step 4: default-equal results are
// elided from over; type-mismatched results are discarded with a warning;
// anything else is written.
func applyResult(ctx *Context, scope, setting string, props, result *psval.Value, logger pslog.Logger) {
	scopeOver, ok := ctx.over.GetMember(scope)
	if !ok {
		scopeOver = psval.Object()
		ctx.over.AddMember(scope, scopeOver)
	}

	if dv, ok := props.GetMember("default_value"); ok && dv.Equal(result) {
		scopeOver.RemoveMember(setting)
		return
	}

	declared := ""
	if t, ok := props.GetMember("type"); ok {
		declared = t.GetString()
	}
	if !checkType(declared, result) {
		logger.Warn("type mismatch evaluating " + scope + "/" + setting)
		scopeOver.RemoveMember(setting)
		return
	}

	scopeOver.AddMember(setting, result)
}

func nilZapLogger(l pslog.Logger) pslog.Logger {
	if l == nil {
		return pslog.NoOp()
	}
	return l
}
