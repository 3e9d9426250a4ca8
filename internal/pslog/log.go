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

// Package pslog threads an optional zap logger through the loader and
// evaluator. The loader calls Warn for each expression that fails to
// parse; the evaluator calls Warn for each setting whose evaluation fails
// and for each type mismatch after evaluation. Unknown dependency names
// and settings with no registered default are not reported. Messages are
// plain strings without structured fields, and a no-op logger is used when
// the caller supplies none.
package pslog

import "go.uber.org/zap"

// Logger is the narrow surface the loader and evaluator need; *zap.Logger
// satisfies it directly.
type Logger interface {
	Warn(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// NoOp returns a Logger that discards everything, used when the caller
// passes a nil *zap.Logger to a loader or evaluator constructor.
func NoOp() Logger {
	return zap.NewNop()
}

// Or returns l if non-nil, else a no-op logger.
func Or(l *zap.Logger) Logger {
	if l == nil {
		return NoOp()
	}
	return l
}
