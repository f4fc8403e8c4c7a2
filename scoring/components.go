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

// Package scoring turns normalized evidence into trust scores. Every function
// in this package is pure.
package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/utils"
)

const (
	ComponentExposure   = "exposure"
	ComponentControls   = "controls"
	ComponentVendor     = "vendor"
	ComponentCompliance = "compliance"
)

const (
	ControlSSOSAML          = "sso_saml"
	ControlMFA              = "mfa"
	ControlRBAC             = "rbac"
	ControlAuditLogs        = "audit_logs"
	ControlEncryptionAtRest = "encryption_at_rest"

	PosturePSIRTPage          = "psirt_page"
	PostureBugBounty          = "bug_bounty"
	PostureSecurityAdvisories = "security_advisories"
	PostureTransparencyReport = "transparency_report"

	ComplianceSOC2Type2 = "soc2_type2"
	ComplianceISO27001  = "iso_27001"
	ComplianceGDPRDPA   = "gdpr_dpa"
	ComplianceHIPAA     = "hipaa"
	ComplianceFedRAMP   = "fedramp"
)

const (
	ExposureMax   = 30
	ControlsMax   = 20
	VendorMax     = 15
	ComplianceMax = 15
)

const noneDetected = "None detected"

type feature struct {
	key    string
	label  string
	points int
}

// feature order is the rationale order
var controlFeatures = []feature{
	{ControlSSOSAML, "SSO/SAML", 6},
	{ControlMFA, "MFA", 5},
	{ControlRBAC, "RBAC", 4},
	{ControlAuditLogs, "Audit logs", 3},
	{ControlEncryptionAtRest, "Encryption at rest", 2},
}

var postureFeatures = []feature{
	{PosturePSIRTPage, "PSIRT page", 5},
	{PostureBugBounty, "Bug bounty", 4},
	{PostureSecurityAdvisories, "Security advisories", 3},
	{PostureTransparencyReport, "Transparency report", 3},
}

var complianceFeatures = []feature{
	{ComplianceSOC2Type2, "SOC 2 Type II", 7},
	{ComplianceISO27001, "ISO 27001", 5},
	{ComplianceGDPRDPA, "GDPR/DPA", 3},
}

// CVEStats is the aggregate the exposure scorer works on.
type CVEStats struct {
	Total          int
	KEVHits        int
	Critical       int
	High           int
	Medium         int
	RecentVelocity int
}

func normalizeSeverity(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "MODERATE" {
		return "MEDIUM"
	}
	return s
}

func cveKey(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func hasCVEKey(v dtos.Vulnerability) bool {
	return cveKey(v.ID) != ""
}

// AggregateCVEStats counts distinct vulnerabilities. A CVE is a KEV hit when
// the vulnerability list flags it or the KEV list names it. Critical counts
// CRITICAL severity only. Entries without an id are counted individually.
// RecentVelocity counts CVEs published in the twelve months up to AsOf and
// stays 0 when AsOf is unset.
func AggregateCVEStats(signals dtos.Signals) CVEStats {
	var stats CVEStats

	vulns := append(
		utils.UniqueBy(utils.Filter(signals.NVDCVEs, hasCVEKey), func(v dtos.Vulnerability) string { return cveKey(v.ID) }),
		utils.Filter(signals.NVDCVEs, func(v dtos.Vulnerability) bool { return !hasCVEKey(v) })...,
	)

	var windowStart time.Time
	if !signals.AsOf.IsZero() {
		windowStart = signals.AsOf.AddDate(-1, 0, 0)
	}

	kev := map[string]struct{}{}
	anonymousKEV := utils.Count(signals.CISAKEV, func(e dtos.KEVEntry) bool { return cveKey(e.CVEID) == "" })
	for _, v := range vulns {
		stats.Total++
		switch normalizeSeverity(v.Severity) {
		case "CRITICAL":
			stats.Critical++
		case "HIGH":
			stats.High++
		case "MEDIUM":
			stats.Medium++
		}
		if v.InKEV {
			if id := cveKey(v.ID); id != "" {
				kev[id] = struct{}{}
			} else {
				anonymousKEV++
			}
		}
		if !windowStart.IsZero() && v.Published != nil &&
			v.Published.After(windowStart) && !v.Published.After(signals.AsOf) {
			stats.RecentVelocity++
		}
	}
	for _, entry := range signals.CISAKEV {
		if id := cveKey(entry.CVEID); id != "" {
			kev[id] = struct{}{}
		}
	}

	stats.KEVHits = len(kev) + anonymousKEV
	return stats
}

// ScoreExposure starts at the maximum and subtracts for KEV presence,
// critical vulnerabilities and a high disclosure rate. Any KEV hit keeps the
// score below half of the maximum.
func ScoreExposure(stats CVEStats) dtos.ComponentScore {
	score := ExposureMax
	if stats.KEVHits > 0 {
		score -= 15
	}
	switch {
	case stats.Critical > 5:
		score -= 10
	case stats.Critical > 0, stats.KEVHits > 0:
		// a KEV hit without criticals still takes the single critical deduction
		score -= 5
	}
	if stats.RecentVelocity > 10 {
		score -= 5
	}
	return dtos.ComponentScore{
		Score:     max(0, score),
		Max:       ExposureMax,
		Rationale: fmt.Sprintf("KEV hits: %d, Critical CVEs: %d, Recent velocity: %d", stats.KEVHits, stats.Critical, stats.RecentVelocity),
	}
}

func scoreFeatures(flags map[string]bool, features []feature, maxScore int, prefix string) dtos.ComponentScore {
	score := 0
	var fired []string
	for _, f := range features {
		if flags[f.key] {
			score += f.points
			fired = append(fired, f.label)
		}
	}
	detail := noneDetected
	if len(fired) > 0 {
		detail = strings.Join(fired, ", ")
	}
	return dtos.ComponentScore{
		Score:     min(score, maxScore),
		Max:       maxScore,
		Rationale: prefix + detail,
	}
}

func ScoreControls(controls map[string]bool) dtos.ComponentScore {
	return scoreFeatures(controls, controlFeatures, ControlsMax, "Controls present: ")
}

func ScoreVendorPosture(posture map[string]bool) dtos.ComponentScore {
	return scoreFeatures(posture, postureFeatures, VendorMax, "Vendor signals: ")
}

func ScoreCompliance(compliance map[string]bool) dtos.ComponentScore {
	return scoreFeatures(compliance, complianceFeatures, ComplianceMax, "Compliance: ")
}
