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
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/maurerpe-go/psconf/internal/pslog"
	"github.com/maurerpe-go/psconf/internal/psload"
	"github.com/maurerpe-go/psconf/internal/psval"
)

// EvalAllBatch runs EvalAll for each entry in overridesList concurrently
// against one shared, read-only printer (spec §5: "multiple evaluations
// against the same printer may proceed in independent threads" once the
// loader has returned and the printer is no longer mutated). It does not
// parallelize the inside of a single evalAll call — that stays the
// single-threaded work-queue loop of EvalAll.
func EvalAllBatch(ctx context.Context, printer *psload.Printer, overridesList []*psval.Value, logger pslog.Logger) ([]*psval.Value, error) {
	results := make([]*psval.Value, len(overridesList))
	g, _ := errgroup.WithContext(ctx)
	for i, overrides := range overridesList {
		i, overrides := i, overrides
		g.Go(func() error {
			r, err := EvalAll(printer, overrides, logger)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
