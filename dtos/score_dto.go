package dtos

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

type ComponentScore struct {
	Score     int    `json:"score"`
	Max       int    `json:"max"`
	Rationale string `json:"rationale"`
}

type TrustScore struct {
	TotalScore      int                       `json:"total_score"`
	Confidence      float64                   `json:"confidence"`
	ConfidenceLevel ConfidenceLevel           `json:"confidence_level"`
	Components      map[string]ComponentScore `json:"components"`
	Rationale       string                    `json:"rationale"`
}

// WeightedInputs are the six normalized inputs of the continuous scoring mode.
type WeightedInputs struct {
	Exposure      float64 `json:"exposure" yaml:"exposure"`
	Controls      float64 `json:"controls" yaml:"controls"`
	VendorPosture float64 `json:"vendor_posture" yaml:"vendor_posture"`
	Compliance    float64 `json:"compliance" yaml:"compliance"`
	Incidents     float64 `json:"incidents" yaml:"incidents"`
	DataHandling  float64 `json:"data_handling" yaml:"data_handling"`
}
