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
	"log/slog"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/normalize"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/pkg/errors"
)

// DefaultFuzzyThreshold is the minimum weighted ratio (0-100) an alias must
// reach to replace a vendor candidate.
const DefaultFuzzyThreshold = 90.0

const (
	DefaultHomepage = "https://example.com/"
	DefaultCategory = "Unknown"
)

type Option func(*Resolver)

func WithFuzzyThreshold(threshold float64) Option {
	return func(r *Resolver) {
		r.fuzzyThreshold = threshold
	}
}

type Resolver struct {
	hints          *HintTable
	aliases        *AliasTable
	fuzzyThreshold float64
}

var _ shared.Resolver = (*Resolver)(nil)

func NewResolver(hints *HintTable, aliases *AliasTable, opts ...Option) *Resolver {
	r := &Resolver{
		hints:          hints,
		aliases:        aliases,
		fuzzyThreshold: DefaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps free text to a canonical identity. The only failure is a
// product that is empty after normalization.
func (r *Resolver) Resolve(in dtos.ResolveInput) (dtos.EntityIdentity, error) {
	product := normalize.Text(in.Product)
	if product == "" {
		return dtos.EntityIdentity{}, errors.Wrap(shared.ErrInvalidInput, "product must not be empty")
	}

	sha1 := normalize.HexKey(in.SHA1)
	identifiers := map[string]string{}
	if sha1 != "" {
		identifiers["sha1"] = sha1
	}

	if sha1 != "" {
		if hint, ok := r.hints.LookupSHA1(sha1); ok {
			return dtos.EntityIdentity{
				Vendor:      firstNonEmpty(hint.Vendor, product),
				Product:     product,
				Homepage:    firstNonEmpty(hint.Homepage, DefaultHomepage),
				Category:    firstNonEmpty(hint.Category, DefaultCategory),
				Identifiers: identifiers,
				Source:      dtos.IdentitySourceResolverSHA1,
			}, nil
		}
	}

	hint, _ := r.hints.Lookup(product)

	vendor := r.CanonicalizeVendor(in.Vendor)
	if vendor == "" {
		vendor = hint.Vendor
	}
	if vendor == "" {
		vendor = r.CanonicalizeVendor(product)
	}
	if vendor == "" {
		vendor = product
	}

	return dtos.EntityIdentity{
		Vendor:      vendor,
		Product:     product,
		Homepage:    firstNonEmpty(normalize.Text(in.URL), hint.Homepage, DefaultHomepage),
		Category:    firstNonEmpty(hint.Category, DefaultCategory),
		Identifiers: identifiers,
		Source:      dtos.IdentitySourceResolver,
	}, nil
}

// CanonicalizeVendor returns the canonical vendor for candidate. Exact alias
// hits win, then the best fuzzy alias at or above the threshold, then the
// normalized candidate itself. An empty candidate yields "".
func (r *Resolver) CanonicalizeVendor(candidate string) string {
	normalized := normalize.Text(candidate)
	if normalized == "" {
		return ""
	}
	if r.aliases.Len() == 0 {
		return normalized
	}
	if vendor, ok := r.aliases.Lookup(normalized); ok {
		return vendor
	}

	key := normalize.Key(normalized)
	bestKey, bestScore := "", 0.0
	// keys are sorted, so ties resolve to the lexicographically smallest alias
	for _, alias := range r.aliases.Keys() {
		score := WeightedRatio(key, alias)
		if score > bestScore {
			bestKey, bestScore = alias, score
		}
	}
	if bestKey != "" && bestScore >= r.fuzzyThreshold {
		vendor, _ := r.aliases.Lookup(bestKey)
		slog.Debug("fuzzy vendor match", "candidate", normalized, "alias", bestKey, "vendor", vendor, "score", bestScore)
		return vendor
	}
	return normalized
}

// Peers lists other known products of the identity's category.
func (r *Resolver) Peers(identity dtos.EntityIdentity, limit int) []dtos.Alternative {
	if identity.Category == "" || identity.Category == DefaultCategory {
		return nil
	}
	self := normalize.Key(identity.Product)
	var res []dtos.Alternative
	for _, h := range r.hints.ByCategory(identity.Category) {
		if normalize.Key(h.Product) == self {
			continue
		}
		res = append(res, dtos.Alternative{
			Product:  h.Product,
			Vendor:   h.Vendor,
			Homepage: firstNonEmpty(h.Homepage, DefaultHomepage),
		})
		if limit > 0 && len(res) >= limit {
			break
		}
	}
	return res
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
