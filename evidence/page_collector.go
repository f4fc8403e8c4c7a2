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
	"net/url"
	"strings"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/resolver"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/pkg/errors"
)

const (
	SourceVendorPosture = "vendor_posture"
	SourceControls      = "controls"
	SourceCompliance    = "compliance"

	ClaimFlags = "flags"
)

// PageCollector scans one page below the subject homepage for keywords.
type PageCollector struct {
	reader   *ReadThrough
	source   string
	parserID string
	path     string
	kind     dtos.SignalKind
	parse    func(raw []byte) map[string]bool
}

var _ shared.Collector = (*PageCollector)(nil)

func NewVendorPostureCollector(reader *ReadThrough) *PageCollector {
	return &PageCollector{
		reader:   reader,
		source:   SourceVendorPosture,
		parserID: "vendor-posture-keywords@1",
		path:     "/security",
		kind:     dtos.SignalKindVendorPostureMap,
		parse:    ParseVendorPosture,
	}
}

func NewControlsCollector(reader *ReadThrough) *PageCollector {
	return &PageCollector{
		reader:   reader,
		source:   SourceControls,
		parserID: "controls-keywords@1",
		path:     "/",
		kind:     dtos.SignalKindControlsMap,
		parse:    ParseControls,
	}
}

func NewComplianceCollector(reader *ReadThrough) *PageCollector {
	return &PageCollector{
		reader:   reader,
		source:   SourceCompliance,
		parserID: "compliance-keywords@1",
		path:     "/trust",
		kind:     dtos.SignalKindComplianceMap,
		parse:    ParseCompliance,
	}
}

func (c *PageCollector) Source() string {
	return c.source
}

func (c *PageCollector) ParserID() string {
	return c.parserID
}

func (c *PageCollector) pageURL(homepage string) (string, error) {
	if homepage == "" || homepage == resolver.DefaultHomepage {
		return "", errors.New("no known homepage")
	}
	u, err := url.Parse(homepage)
	if err != nil || u.Host == "" {
		return "", errors.Errorf("invalid homepage %q", homepage)
	}
	u.Path = strings.TrimRight(u.Path, "/") + c.path
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

func (c *PageCollector) Collect(ctx context.Context, subject dtos.EntityIdentity, opts shared.FetchOptions) (dtos.Signal, error) {
	signal := dtos.Signal{Kind: c.kind, Source: c.source}

	pageURL, err := c.pageURL(subject.Homepage)
	if err != nil && !opts.Offline {
		return signal, shared.NewEvidenceUnavailable(c.source, subject.Product, err)
	}

	doc, err := c.reader.Read(ctx, Request{
		Source:  c.source,
		Subject: subject.Product,
		URL:     pageURL,
		Fixture: FixtureName(subject.Product, "html"),
	}, opts)
	if err != nil {
		return signal, err
	}

	flags := c.parse(doc.Raw)
	signal.Flags = flags

	if err := c.reader.record(ctx, doc, c.source, c.parserID, ClaimFlags, flags, opts); err != nil {
		return dtos.Signal{Kind: c.kind, Source: c.source}, err
	}

	slog.Debug("collected page evidence", "source", c.source, "product", subject.Product, "origin", doc.Origin)
	return signal, nil
}
