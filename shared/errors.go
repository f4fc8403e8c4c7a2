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

package shared

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidInput is returned when the product text is empty after normalization.
var ErrInvalidInput = errors.New("invalid input")

// ErrReadOnlyCache is returned for any write against a cache opened for replay.
var ErrReadOnlyCache = errors.New("evidence cache is read-only")

// EvidenceUnavailableError reports that a source could not deliver evidence
// after all read paths were exhausted. Callers recover from it with an empty signal.
type EvidenceUnavailableError struct {
	Source  string
	Subject string
	Err     error
}

func (e *EvidenceUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("evidence unavailable from %s for %q", e.Source, e.Subject)
	}
	return fmt.Sprintf("evidence unavailable from %s for %q: %s", e.Source, e.Subject, e.Err)
}

func (e *EvidenceUnavailableError) Unwrap() error {
	return e.Err
}

func NewEvidenceUnavailable(source, subject string, err error) error {
	return &EvidenceUnavailableError{Source: source, Subject: subject, Err: err}
}

// CacheIOError wraps any failure of the evidence store. It is never swallowed.
type CacheIOError struct {
	Op  string
	Err error
}

func (e *CacheIOError) Error() string {
	return fmt.Sprintf("cache %s failed: %s", e.Op, e.Err)
}

func (e *CacheIOError) Unwrap() error {
	return e.Err
}

func NewCacheIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	var cacheErr *CacheIOError
	if errors.As(err, &cacheErr) {
		return err
	}
	return &CacheIOError{Op: op, Err: err}
}

func IsCacheIOError(err error) bool {
	var cacheErr *CacheIOError
	return errors.As(err, &cacheErr)
}

func IsEvidenceUnavailable(err error) bool {
	var unavailable *EvidenceUnavailableError
	return errors.As(err, &unavailable)
}
