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

package evidence

import (
	"context"
	"log/slog"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/l3montree-dev/assessor/utils"
)

const (
	SourceKEV      = "cisa_kev"
	KEVParserID    = "cisa-kev-v1@1"
	ClaimKEVList   = "kev_list"
	kevFixtureName = "catalog.json"
)

// KEVCollector reads the whole catalog once per url and filters it locally.
type KEVCollector struct {
	reader  *ReadThrough
	feedURL string
}

var _ shared.Collector = (*KEVCollector)(nil)

func NewKEVCollector(reader *ReadThrough, cfg Config) *KEVCollector {
	feedURL := cfg.KEVURL
	if feedURL == "" {
		feedURL = DefaultKEVURL
	}
	return &KEVCollector{reader: reader, feedURL: feedURL}
}

func (c *KEVCollector) Source() string {
	return SourceKEV
}

func (c *KEVCollector) ParserID() string {
	return KEVParserID
}

func (c *KEVCollector) Collect(ctx context.Context, subject dtos.EntityIdentity, opts shared.FetchOptions) (dtos.Signal, error) {
	signal := dtos.Signal{Kind: dtos.SignalKindKEVList, Source: SourceKEV}

	doc, err := c.reader.Read(ctx, Request{
		Source:  SourceKEV,
		Subject: subject.Product,
		URL:     c.feedURL,
		Fixture: kevFixtureName,
	}, opts)
	if err != nil {
		return signal, err
	}

	entries, err := ParseKEVCatalog(doc.Raw, subject)
	if err != nil {
		return signal, shared.NewEvidenceUnavailable(SourceKEV, subject.Product, err)
	}
	signal.KEV = entries

	// the catalog is shared by all subjects, the claim is scoped to one
	if err := c.reader.record(ctx, doc, SourceKEV, KEVParserID, ClaimKEVList, map[string]any{
		"vendor":  subject.Vendor,
		"product": subject.Product,
		"ids":     utils.Map(entries, func(e dtos.KEVEntry) string { return e.CVEID }),
	}, opts); err != nil {
		return dtos.Signal{Kind: signal.Kind, Source: SourceKEV}, err
	}

	slog.Debug("collected kev evidence", "product", subject.Product, "origin", doc.Origin, "entries", len(entries))
	return signal, nil
}
