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
	"net/http"
	"net/url"
	"strconv"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/l3montree-dev/assessor/utils"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	SourceNVD      = "nvd"
	NVDParserID    = "nvd-cve-v2@1"
	ClaimCVEList   = "cve_list"
	nvdAPIKeyField = "apiKey"
)

type NVDCollector struct {
	reader         *ReadThrough
	baseURL        string
	apiKey         string
	resultsPerPage int
	limiter        *rate.Limiter
}

var _ shared.Collector = (*NVDCollector)(nil)

func NewNVDCollector(reader *ReadThrough, cfg Config) *NVDCollector {
	baseURL := cfg.NVDBaseURL
	if baseURL == "" {
		baseURL = DefaultNVDBaseURL
	}
	return &NVDCollector{
		reader:         reader,
		baseURL:        baseURL,
		apiKey:         cfg.NVDAPIKey,
		resultsPerPage: cfg.NVDResultsPerPage,
		limiter:        rate.NewLimiter(rate.Every(cfg.nvdInterval()), 1),
	}
}

func (c *NVDCollector) Source() string {
	return SourceNVD
}

func (c *NVDCollector) ParserID() string {
	return NVDParserID
}

// searchURL never carries the api key so the cache key is stable.
func (c *NVDCollector) searchURL(subject dtos.EntityIdentity) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid nvd base url")
	}
	q := u.Query()
	q.Set("keywordSearch", subject.Product)
	if c.resultsPerPage > 0 {
		q.Set("resultsPerPage", strconv.Itoa(c.resultsPerPage))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *NVDCollector) Collect(ctx context.Context, subject dtos.EntityIdentity, opts shared.FetchOptions) (dtos.Signal, error) {
	signal := dtos.Signal{Kind: dtos.SignalKindVulnerabilityList, Source: SourceNVD}

	searchURL, err := c.searchURL(subject)
	if err != nil {
		return signal, shared.NewEvidenceUnavailable(SourceNVD, subject.Product, err)
	}

	header := http.Header{}
	if c.apiKey != "" {
		header.Set(nvdAPIKeyField, c.apiKey)
	}

	doc, err := c.reader.Read(ctx, Request{
		Source:  SourceNVD,
		Subject: subject.Product,
		URL:     searchURL,
		Fixture: FixtureName(subject.Product, "json"),
		Header:  header,
		Wait:    c.limiter.Wait,
	}, opts)
	if err != nil {
		return signal, err
	}

	vulns, err := ParseNVDResponse(doc.Raw)
	if err != nil {
		return signal, shared.NewEvidenceUnavailable(SourceNVD, subject.Product, err)
	}
	signal.Vulnerabilities = vulns

	ids := utils.Map(vulns, func(v dtos.Vulnerability) string { return v.ID })
	if err := c.reader.record(ctx, doc, SourceNVD, NVDParserID, ClaimCVEList, map[string]any{
		"count": len(vulns),
		"ids":   ids,
	}, opts); err != nil {
		return dtos.Signal{Kind: signal.Kind, Source: SourceNVD}, err
	}

	slog.Debug("collected nvd evidence", "product", subject.Product, "origin", doc.Origin, "cves", len(vulns))
	return signal, nil
}
