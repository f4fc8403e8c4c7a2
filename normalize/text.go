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

// Package normalize holds the text normalization shared by the resolver and the evidence parsers.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Text applies NFKC composition and collapses every whitespace run into a single space.
// Leading and trailing whitespace is dropped.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// Key is the lookup form of s: normalized and case folded.
func Key(s string) string {
	n := Text(s)
	if n == "" {
		return ""
	}
	// cases.Caser is stateful and must not be shared between goroutines
	return cases.Fold().String(n)
}

// HexKey lower-cases a hex identifier such as a sha1 digest.
func HexKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
