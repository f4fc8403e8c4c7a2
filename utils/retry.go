// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package utils

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// maxBackoff caps the exponential growth of the delay between attempts.
const maxBackoff = 30 * time.Second

// permanentError stops Retry without further attempts.
type permanentError struct {
	err error
}

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// Retry executes fn up to attempts times with exponential backoff and full
// jitter. delay is the initial backoff and doubles after every failure.
// The name labels the attempt counters.
func Retry[T any](ctx context.Context, name string, attempts int, delay time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if attempts <= 0 {
		attempts = 1
	}

	meter := otel.Meter("github.com/l3montree-dev/assessor")
	attemptCounter, _ := meter.Int64Counter("assessor_retry_attempts_total")
	failCounter, _ := meter.Int64Counter("assessor_retry_fail_total")
	attrs := metric.WithAttributes(attribute.String("operation", name))

	cur := delay
	var lastErr error
	for i := 0; i < attempts; i++ {
		v, err := fn(ctx)
		attemptCounter.Add(ctx, 1, attrs)
		if err == nil {
			return v, nil
		}
		lastErr = err

		var permanent permanentError
		if errors.As(err, &permanent) {
			failCounter.Add(ctx, 1, attrs)
			return zero, permanent.err
		}
		if i == attempts-1 {
			break
		}

		if cur > maxBackoff {
			cur = maxBackoff
		}
		var sleep time.Duration
		if cur > 0 {
			sleep = time.Duration(rand.Int64N(int64(cur) + 1))
		}
		select {
		case <-ctx.Done():
			failCounter.Add(ctx, 1, attrs)
			return zero, ctx.Err()
		case <-time.After(sleep):
		}
		cur *= 2
	}
	failCounter.Add(ctx, 1, attrs)
	return zero, lastErr
}
