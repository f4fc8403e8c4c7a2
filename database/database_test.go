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

package database

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsReadOnlyViolation(t *testing.T) {
	t.Run("should match the sqlstate regardless of the message language", func(t *testing.T) {
		err := &pgconn.PgError{Code: "25006", Message: "kann INSERT nicht in einer Read-only-Transaktion ausführen"}
		assert.True(t, IsReadOnlyViolation(err))
	})

	t.Run("should see through wrapping", func(t *testing.T) {
		err := errors.Wrap(&pgconn.PgError{Code: "25006"}, "could not upsert content")
		assert.True(t, IsReadOnlyViolation(err))
	})

	t.Run("should ignore other errors", func(t *testing.T) {
		assert.False(t, IsReadOnlyViolation(nil))
		assert.False(t, IsReadOnlyViolation(&pgconn.PgError{Code: "23505"}))
		assert.False(t, IsReadOnlyViolation(errors.New("cannot execute INSERT in a read-only transaction")))
	})
}
