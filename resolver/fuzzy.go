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

package resolver

import (
	"math"
	"sort"
	"strings"
)

// ratio is the indel similarity of a and b on a 0-100 scale: insertions and
// deletions cost one, a substitution costs two.
func ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	indel := total - 2*lcsLength(ra, rb)
	return 100 * float64(total-indel) / float64(total)
}

// lcsLength is the length of the longest common subsequence of a and b.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			if a[i] == b[j] {
				cur[j+1] = prev[j] + 1
			} else {
				cur[j+1] = max(prev[j+1], cur[j])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// partialRatio slides the shorter string over the longer one and keeps the best window.
func partialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	short := string(ra)
	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		r := ratio(short, string(rb[i:i+len(ra)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func sortedTokens(s string) []string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return tokens
}

func tokenSortRatio(a, b string) float64 {
	return ratio(strings.Join(sortedTokens(a), " "), strings.Join(sortedTokens(b), " "))
}

func partialTokenSortRatio(a, b string) float64 {
	return partialRatio(strings.Join(sortedTokens(a), " "), strings.Join(sortedTokens(b), " "))
}

// tokenSets splits the tokens of a and b into the shared part and the two remainders.
func tokenSets(a, b string) (string, string, string) {
	setA := map[string]bool{}
	for _, t := range strings.Fields(a) {
		setA[t] = true
	}
	setB := map[string]bool{}
	for _, t := range strings.Fields(b) {
		setB[t] = true
	}
	var inter, onlyA, onlyB []string
	for t := range setA {
		if setB[t] {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if !setA[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	return strings.Join(inter, " "), strings.Join(onlyA, " "), strings.Join(onlyB, " ")
}

func joinNonEmpty(parts ...string) string {
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			res = append(res, p)
		}
	}
	return strings.Join(res, " ")
}

func tokenSetRatio(a, b string, scorer func(string, string) float64) float64 {
	inter, onlyA, onlyB := tokenSets(a, b)
	if inter != "" && (onlyA == "" || onlyB == "") {
		return 100
	}
	combinedA := joinNonEmpty(inter, onlyA)
	combinedB := joinNonEmpty(inter, onlyB)
	best := scorer(combinedA, combinedB)
	if inter != "" {
		best = math.Max(best, scorer(inter, combinedA))
		best = math.Max(best, scorer(inter, combinedB))
	}
	return best
}

// WeightedRatio scores the similarity of two already normalized strings on a
// 0-100 scale. It takes the best of a plain edit ratio, token based ratios and,
// when the lengths differ a lot, partial ratios scaled down by the length gap.
func WeightedRatio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))

	best := ratio(a, b)
	if lenRatio < 1.5 {
		best = math.Max(best, tokenSortRatio(a, b)*0.95)
		best = math.Max(best, tokenSetRatio(a, b, ratio)*0.95)
		return best
	}

	partialScale := 0.9
	if lenRatio >= 8 {
		partialScale = 0.6
	}
	best = math.Max(best, partialRatio(a, b)*partialScale)
	best = math.Max(best, partialTokenSortRatio(a, b)*0.95*partialScale)
	best = math.Max(best, tokenSetRatio(a, b, partialRatio)*0.95*partialScale)
	return best
}
