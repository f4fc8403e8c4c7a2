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

package services

import (
	"fmt"
	"strings"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/scoring"
)

const (
	recommendationHighRisk = "High risk due to KEV presence. Consider alternatives."
	recommendationModerate = "Moderate risk. Review controls before deployment."
)

// GenerateBrief renders a short markdown assessment for security reviewers.
// The output depends only on its arguments.
func GenerateBrief(entity dtos.EntityIdentity, signals dtos.Signals, score dtos.TrustScore, alternatives []dtos.Alternative) string {
	stats := scoring.AggregateCVEStats(signals)
	rationale := func(component string) string {
		return score.Components[component].Rationale
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Security Assessment: %s\n\n", entity.Product)
	fmt.Fprintf(&b, "**Vendor:** %s  \n", entity.Vendor)
	fmt.Fprintf(&b, "**Category:** %s  \n", entity.Category)
	fmt.Fprintf(&b, "**Homepage:** %s  \n", entity.Homepage)
	fmt.Fprintf(&b, "**Trust Score:** %d/100 (Confidence: %.1f%%, %s)\n\n", score.TotalScore, score.Confidence*100, score.ConfidenceLevel)

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "%s is a %s tool by %s. Based on available evidence:\n", entity.Product, entity.Category, entity.Vendor)
	fmt.Fprintf(&b, "- **CVE Exposure:** %d total CVEs, %d critical, %d in CISA KEV.\n", stats.Total, stats.Critical, stats.KEVHits)
	fmt.Fprintf(&b, "- **Controls:** %s\n", rationale(scoring.ComponentControls))
	fmt.Fprintf(&b, "- **Vendor Posture:** %s\n", rationale(scoring.ComponentVendor))
	fmt.Fprintf(&b, "- **Compliance:** %s\n\n", rationale(scoring.ComponentCompliance))

	b.WriteString("## Risk Assessment\n")
	fmt.Fprintf(&b, "%s\n\n%s\n\n", rationale(scoring.ComponentExposure), score.Rationale)

	b.WriteString("## Recommendation\n")
	if stats.KEVHits > 0 {
		b.WriteString(recommendationHighRisk)
	} else {
		b.WriteString(recommendationModerate)
	}
	b.WriteString("\n")

	if len(alternatives) > 0 {
		b.WriteString("\n## Alternatives\n")
		for _, alt := range alternatives {
			fmt.Fprintf(&b, "- %s (%s) %s\n", alt.Product, alt.Vendor, alt.Homepage)
		}
	}

	b.WriteString("\n---\n*Generated from cached, deterministic evidence.*")
	return b.String()
}
