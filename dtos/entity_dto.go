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

package dtos

type IdentitySource string

const (
	IdentitySourceResolver     IdentitySource = "resolver"
	IdentitySourceResolverSHA1 IdentitySource = "resolver_sha1"
)

// ResolveInput is the free text a caller hands to the resolver.
type ResolveInput struct {
	Product string `json:"product" validate:"required"`
	Vendor  string `json:"vendor,omitempty"`
	URL     string `json:"url,omitempty" validate:"omitempty,url"`
	SHA1    string `json:"sha1,omitempty" validate:"omitempty,hexadecimal,len=40"`
}

// EntityIdentity is the canonical identity of an assessed subject.
// A value is built once per resolution and never mutated afterwards.
type EntityIdentity struct {
	Vendor      string            `json:"vendor"`
	Product     string            `json:"product"`
	Homepage    string            `json:"homepage"`
	Category    string            `json:"category"`
	Identifiers map[string]string `json:"identifiers"`
	Source      IdentitySource    `json:"source"`
}

func (e EntityIdentity) SHA1() string {
	return e.Identifiers["sha1"]
}
