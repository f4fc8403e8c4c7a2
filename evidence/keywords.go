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
	"html"
	"regexp"
	"strings"

	"github.com/l3montree-dev/assessor/normalize"
	"github.com/l3montree-dev/assessor/scoring"
)

type keywordRule struct {
	flag     string
	patterns []*regexp.Regexp
}

func rule(flag string, patterns ...string) keywordRule {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return keywordRule{flag: flag, patterns: compiled}
}

var complianceRules = []keywordRule{
	rule(scoring.ComplianceSOC2Type2, `soc 2 type ii`, `soc2 type 2`, `soc 2®`, `service organization control`),
	rule(scoring.ComplianceISO27001, `iso 27001`, `iso/iec 27001`, `iso27001`),
	rule(scoring.ComplianceGDPRDPA, `\bgdpr\b`, `data processing agreement`, `\bdpa\b`, `general data protection`),
	rule(scoring.ComplianceHIPAA, `\bhipaa\b`, `health insurance portability`, `phi protection`),
	rule(scoring.ComplianceFedRAMP, `fedramp`, `federal risk and authorization`),
}

var vendorPostureRules = []keywordRule{
	rule(scoring.PosturePSIRTPage, `\bpsirt\b`, `product security incident response`, `security response center`),
	rule(scoring.PostureBugBounty, `bug bounty`, `hackerone`, `bugcrowd`, `vulnerability reward`),
	rule(scoring.PostureSecurityAdvisories, `security advisor(y|ies)`, `security bulletin`),
	rule(scoring.PostureTransparencyReport, `transparency report`),
}

var controlRules = []keywordRule{
	rule(scoring.ControlSSOSAML, `\bsso\b`, `\bsaml\b`, `single sign-on`),
	rule(scoring.ControlMFA, `\bmfa\b`, `\b2fa\b`, `multi-factor`, `two-factor`),
	rule(scoring.ControlRBAC, `\brbac\b`, `role-based access`),
	rule(scoring.ControlAuditLogs, `audit log`),
	rule(scoring.ControlEncryptionAtRest, `encryption at rest`, `encrypted at rest`),
}

var markupRe = regexp.MustCompile(`(?s)<script.*?</script>|<style.*?</style>|<[^>]+>`)

// pageText reduces an html page to lower case visible text.
func pageText(raw []byte) string {
	text := markupRe.ReplaceAllString(string(raw), " ")
	return strings.ToLower(normalize.Text(html.UnescapeString(text)))
}

// matchFlags returns every rule flag, true when one of its patterns occurs.
func matchFlags(rules []keywordRule, text string) map[string]bool {
	res := make(map[string]bool, len(rules))
	for _, r := range rules {
		res[r.flag] = false
		for _, p := range r.patterns {
			if p.MatchString(text) {
				res[r.flag] = true
				break
			}
		}
	}
	return res
}

func ParseCompliance(raw []byte) map[string]bool {
	return matchFlags(complianceRules, pageText(raw))
}

func ParseVendorPosture(raw []byte) map[string]bool {
	return matchFlags(vendorPostureRules, pageText(raw))
}

func ParseControls(raw []byte) map[string]bool {
	return matchFlags(controlRules, pageText(raw))
}
