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
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	t.Run("should return the first success", func(t *testing.T) {
		calls := 0
		v, err := Retry(context.Background(), "test", 3, time.Millisecond, func(context.Context) (int, error) {
			calls++
			if calls < 2 {
				return 0, errors.New("flaky")
			}
			return 42, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 2, calls)
	})

	t.Run("should stop at the attempt ceiling", func(t *testing.T) {
		calls := 0
		_, err := Retry(context.Background(), "test", 3, time.Millisecond, func(context.Context) (int, error) {
			calls++
			return 0, errors.New("down")
		})
		assert.EqualError(t, err, "down")
		assert.Equal(t, 3, calls)
	})

	t.Run("should not retry permanent errors", func(t *testing.T) {
		calls := 0
		sentinel := errors.New("not found")
		_, err := Retry(context.Background(), "test", 5, time.Millisecond, func(context.Context) (int, error) {
			calls++
			return 0, Permanent(sentinel)
		})
		assert.True(t, errors.Is(err, sentinel))
		assert.Equal(t, 1, calls)
	})

	t.Run("should give up when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Retry(ctx, "test", 5, time.Hour, func(context.Context) (int, error) {
			return 0, errors.New("down")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSliceHelpers(t *testing.T) {
	in := []int{1, 2, 2, 3, 4}
	assert.Equal(t, []int{2, 2, 4}, Filter(in, func(i int) bool { return i%2 == 0 }))
	assert.Equal(t, []int{2, 4, 4, 6, 8}, Map(in, func(i int) int { return i * 2 }))
	assert.Equal(t, 2, Count(in, func(i int) bool { return i == 2 }))
	assert.Equal(t, []int{1, 2, 3, 4}, UniqueBy(in, func(i int) int { return i }))
	assert.True(t, AnyTrue(map[string]bool{"a": false, "b": true}))
	assert.False(t, AnyTrue(map[string]bool{"a": false}))
}
