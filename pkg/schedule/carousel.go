// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package schedule

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/collector-sdk/pkg/defaults"
	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

// Carousel calls fn with each of args in turn, round-robin, spreading the
// calls evenly so that every arg is visited once per interval. The first call
// happens immediately. Carousel blocks until ctx is done and returns ctx.Err().
func Carousel[A any](ctx context.Context, interval time.Duration, fn func(context.Context, A), args []A) error {
	if len(args) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "Supplied invalid args to `carousel`: none")
	}
	if interval <= 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "Supplied invalid interval for `carousel`",
			map[string]any{"interval": interval.String()})
	}
	if fn == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "Supplied undefined function to `carousel`")
	}

	step := max(interval/time.Duration(len(args)), defaults.CarouselMinStep)
	limiter := rate.NewLimiter(rate.Every(step), 1)

	for i := 0; ; i = (i + 1) % len(args) {
		if err := limiter.Wait(ctx); err != nil {
			// Wait fails early when the next slot is past the deadline
			<-ctx.Done()
			return ctx.Err()
		}
		fn(ctx, args[i])
	}
}
