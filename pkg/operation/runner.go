// Copyright 2025 walteh LLC
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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations as consecutive pipeline stages
type Runner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// 🏃 Run executes ops in order and stops at the first failure. The failing
// operation's error is returned as is.
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}

		ev := r.logger.Debug().Int("stage", i+1).Int("stages", len(ops))
		if d, ok := op.(interface{ Dir() string }); ok {
			ev = ev.Str("dir", d.Dir())
		}
		ev.Msg("running operation")

		if err := op.Execute(ctx); err != nil {
			r.logger.Error().Err(err).Int("stage", i+1).Msg("operation failed")
			return err
		}
	}
	return nil
}
