package dtos

import "time"

type SignalKind string

const (
	SignalKindVulnerabilityList SignalKind = "vulnerability_list"
	SignalKindKEVList           SignalKind = "kev_list"
	SignalKindControlsMap       SignalKind = "controls_map"
	SignalKindVendorPostureMap  SignalKind = "vendor_posture_map"
	SignalKindComplianceMap     SignalKind = "compliance_map"
)

type Vulnerability struct {
	ID        string     `json:"id"`
	Severity  string     `json:"severity"`
	CVSS      float64    `json:"cvss,omitempty"`
	Vector    string     `json:"vector,omitempty"`
	Published *time.Time `json:"published,omitempty"`
	InKEV     bool       `json:"in_kev"`
	URL       string     `json:"url,omitempty"`
}

type KEVEntry struct {
	CVEID             string `json:"cve_id"`
	VendorProject     string `json:"vendor_project"`
	Product           string `json:"product"`
	VulnerabilityName string `json:"vulnerability_name"`
	DateAdded         string `json:"date_added"`
	DueDate           string `json:"due_date,omitempty"`
	URL               string `json:"url,omitempty"`
}

// Signal is one unit of normalized evidence. Exactly one payload field is
// meaningful, selected by Kind.
type Signal struct {
	Kind            SignalKind      `json:"kind"`
	Source          string          `json:"source"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities,omitempty"`
	KEV             []KEVEntry      `json:"kev,omitempty"`
	Flags           map[string]bool `json:"flags,omitempty"`
}

func (s Signal) Empty() bool {
	return len(s.Vulnerabilities) == 0 && len(s.KEV) == 0 && len(s.Flags) == 0
}

// Signals is the scoring input. Every key is optional, absent keys are empty.
type Signals struct {
	NVDCVEs       []Vulnerability `json:"nvd_cves"`
	CISAKEV       []KEVEntry      `json:"cisa_kev"`
	Controls      map[string]bool `json:"controls"`
	VendorPosture map[string]bool `json:"vendor_posture"`
	Compliance    map[string]bool `json:"compliance"`
	// AsOf anchors the trailing twelve month window. The zero value disables it.
	AsOf time.Time `json:"as_of"`
}

// Add folds a signal into the scoring input according to its kind.
func (s *Signals) Add(signal Signal) {
	switch signal.Kind {
	case SignalKindVulnerabilityList:
		s.NVDCVEs = append(s.NVDCVEs, signal.Vulnerabilities...)
	case SignalKindKEVList:
		s.CISAKEV = append(s.CISAKEV, signal.KEV...)
	case SignalKindControlsMap:
		s.Controls = mergeFlags(s.Controls, signal.Flags)
	case SignalKindVendorPostureMap:
		s.VendorPosture = mergeFlags(s.VendorPosture, signal.Flags)
	case SignalKindComplianceMap:
		s.Compliance = mergeFlags(s.Compliance, signal.Flags)
	}
}

func mergeFlags(dst, src map[string]bool) map[string]bool {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]bool, len(src))
	}
	for k, v := range src {
		dst[k] = dst[k] || v
	}
	return dst
}
