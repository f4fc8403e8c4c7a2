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
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/normalize"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
	"github.com/pkg/errors"
)

const nvdDetailURL = "https://nvd.nist.gov/vuln/detail/"

type cvssData struct {
	Version      string  `json:"version"`
	VectorString string  `json:"vectorString"`
	BaseScore    float64 `json:"baseScore"`
	BaseSeverity string  `json:"baseSeverity"`
}

type cvssMetric struct {
	Source       string   `json:"source"`
	Type         string   `json:"type"`
	CvssData     cvssData `json:"cvssData"`
	BaseSeverity string   `json:"baseSeverity"`
}

type nvdCVE struct {
	ID             string  `json:"id"`
	Published      string  `json:"published"`
	VulnStatus     string  `json:"vulnStatus"`
	CISAExploitAdd *string `json:"cisaExploitAdd"`
	Metrics        struct {
		CvssMetricV40 []cvssMetric `json:"cvssMetricV40"`
		CvssMetricV31 []cvssMetric `json:"cvssMetricV31"`
		CvssMetricV30 []cvssMetric `json:"cvssMetricV30"`
		CvssMetricV2  []cvssMetric `json:"cvssMetricV2"`
	} `json:"metrics"`
}

// nvdResponse is the subset of the cves/2.0 response we read.
type nvdResponse struct {
	ResultsPerPage  int `json:"resultsPerPage"`
	StartIndex      int `json:"startIndex"`
	TotalResults    int `json:"totalResults"`
	Vulnerabilities []struct {
		Cve nvdCVE `json:"cve"`
	} `json:"vulnerabilities"`
}

var nvdTimeLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseNVDTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range nvdTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	slog.Warn("could not parse nvd timestamp", "value", s)
	return nil
}

// primaryMetric prefers the newest cvss version and the primary scorer.
func (c nvdCVE) primaryMetric() (cvssMetric, bool) {
	for _, metrics := range [][]cvssMetric{c.Metrics.CvssMetricV40, c.Metrics.CvssMetricV31, c.Metrics.CvssMetricV30, c.Metrics.CvssMetricV2} {
		if len(metrics) == 0 {
			continue
		}
		for _, m := range metrics {
			if m.Type == "Primary" {
				return m, true
			}
		}
		return metrics[0], true
	}
	return cvssMetric{}, false
}

// scoreVector computes the base score of a cvss 3.x or 4.0 vector.
func scoreVector(vector string) (float64, bool) {
	switch {
	case strings.HasPrefix(vector, "CVSS:3.0"):
		cvss, err := gocvss30.ParseVector(vector)
		if err != nil {
			return 0, false
		}
		return cvss.BaseScore(), true
	case strings.HasPrefix(vector, "CVSS:3.1"):
		cvss, err := gocvss31.ParseVector(vector)
		if err != nil {
			return 0, false
		}
		return cvss.BaseScore(), true
	case strings.HasPrefix(vector, "CVSS:4.0"):
		cvss, err := gocvss40.ParseVector(vector)
		if err != nil {
			return 0, false
		}
		return cvss.Score(), true
	}
	return 0, false
}

// SeverityFromScore uses the cvss v3 qualitative rating scale.
func SeverityFromScore(score float64) string {
	switch {
	case score >= 9.0:
		return "CRITICAL"
	case score >= 7.0:
		return "HIGH"
	case score >= 4.0:
		return "MEDIUM"
	case score > 0:
		return "LOW"
	}
	return "NONE"
}

func toVulnerability(c nvdCVE) dtos.Vulnerability {
	v := dtos.Vulnerability{
		ID:        strings.ToUpper(strings.TrimSpace(c.ID)),
		Severity:  "UNKNOWN",
		Published: parseNVDTime(c.Published),
		InKEV:     c.CISAExploitAdd != nil && *c.CISAExploitAdd != "",
	}
	if v.ID != "" {
		v.URL = nvdDetailURL + v.ID
	}

	m, ok := c.primaryMetric()
	if !ok {
		return v
	}
	v.Vector = m.CvssData.VectorString
	v.CVSS = m.CvssData.BaseScore
	severity := m.CvssData.BaseSeverity
	if severity == "" {
		severity = m.BaseSeverity
	}
	if v.CVSS == 0 {
		if score, ok := scoreVector(v.Vector); ok {
			v.CVSS = score
		}
	}
	if severity == "" && v.CVSS > 0 {
		severity = SeverityFromScore(v.CVSS)
	}
	if severity != "" {
		v.Severity = strings.ToUpper(severity)
	}
	return v
}

// ParseNVDResponse normalizes a cves/2.0 response. Rejected records are skipped.
func ParseNVDResponse(raw []byte) ([]dtos.Vulnerability, error) {
	var resp nvdResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "could not decode nvd response")
	}
	res := make([]dtos.Vulnerability, 0, len(resp.Vulnerabilities))
	for _, item := range resp.Vulnerabilities {
		if strings.EqualFold(item.Cve.VulnStatus, "Rejected") {
			continue
		}
		res = append(res, toVulnerability(item.Cve))
	}
	return res, nil
}

type kevCatalog struct {
	Title           string `json:"title"`
	CatalogVersion  string `json:"catalogVersion"`
	DateReleased    string `json:"dateReleased"`
	Count           int    `json:"count"`
	Vulnerabilities []struct {
		CVEID             string `json:"cveID"`
		VendorProject     string `json:"vendorProject"`
		Product           string `json:"product"`
		VulnerabilityName string `json:"vulnerabilityName"`
		DateAdded         string `json:"dateAdded"`
		DueDate           string `json:"dueDate"`
	} `json:"vulnerabilities"`
}

// ParseKEVCatalog returns the catalog entries that concern subject. An entry
// matches when the product occurs in its vendor or product field, or the
// vendor occurs in its vendor field.
func ParseKEVCatalog(raw []byte, subject dtos.EntityIdentity) ([]dtos.KEVEntry, error) {
	var catalog kevCatalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, errors.Wrap(err, "could not decode kev catalog")
	}

	product := normalize.Key(subject.Product)
	vendor := normalize.Key(subject.Vendor)
	if product == "" && vendor == "" {
		return nil, nil
	}

	res := make([]dtos.KEVEntry, 0)
	for _, e := range catalog.Vulnerabilities {
		vendorProject := normalize.Key(e.VendorProject)
		entryProduct := normalize.Key(e.Product)
		matches := (product != "" && (strings.Contains(vendorProject, product) || strings.Contains(entryProduct, product))) ||
			(vendor != "" && strings.Contains(vendorProject, vendor))
		if !matches {
			continue
		}
		id := strings.ToUpper(strings.TrimSpace(e.CVEID))
		entry := dtos.KEVEntry{
			CVEID:             id,
			VendorProject:     e.VendorProject,
			Product:           e.Product,
			VulnerabilityName: e.VulnerabilityName,
			DateAdded:         e.DateAdded,
			DueDate:           e.DueDate,
		}
		if id != "" {
			entry.URL = nvdDetailURL + id
		}
		res = append(res, entry)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CVEID < res[j].CVEID
	})
	return res, nil
}
