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

package scoring

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/utils"
)

type PolicyKind string

const (
	PolicyComponentSum       PolicyKind = "component_sum"
	PolicyWeightedContinuous PolicyKind = "weighted_continuous"
)

// Result carries the output of one policy. ComponentSum fills Trust,
// WeightedContinuous fills Inputs, Multiplier and Weighted.
type Result struct {
	Kind       PolicyKind
	Trust      dtos.TrustScore
	Inputs     dtos.WeightedInputs
	Multiplier float64
	Weighted   float64
}

type Policy interface {
	Kind() PolicyKind
	Evaluate(signals dtos.Signals) Result
}

// ComponentSum adds four bounded component scores into a 0-100 total.
// Its confidence is the discrete level derived from DataPoints.
type ComponentSum struct{}

var _ Policy = ComponentSum{}

func (ComponentSum) Kind() PolicyKind {
	return PolicyComponentSum
}

func (p ComponentSum) Evaluate(signals dtos.Signals) Result {
	return Result{Kind: PolicyComponentSum, Trust: p.Score(signals)}
}

// Score never fails. Absent signals score as empty.
func (ComponentSum) Score(signals dtos.Signals) dtos.TrustScore {
	stats := AggregateCVEStats(signals)
	components := map[string]dtos.ComponentScore{
		ComponentExposure:   ScoreExposure(stats),
		ComponentControls:   ScoreControls(signals.Controls),
		ComponentVendor:     ScoreVendorPosture(signals.VendorPosture),
		ComponentCompliance: ScoreCompliance(signals.Compliance),
	}

	sum := 0.0
	for _, c := range components {
		sum += float64(c.Score)
	}
	total := int(math.Round(sum))
	total = max(0, min(100, total))

	points := DataPoints(signals)
	level := ConfidenceLevel(points)

	rationale := fmt.Sprintf(
		"Score based on %d CVEs (%d critical, %d high, %d medium), %d CISA KEV entries, %d vendor posture signals and %d compliance attestations.",
		stats.Total, stats.Critical, stats.High, stats.Medium,
		len(signals.CISAKEV), countTrue(signals.VendorPosture), countTrue(signals.Compliance),
	)
	if level == dtos.ConfidenceLow {
		rationale += " " + LowConfidenceCaveat
	}

	return dtos.TrustScore{
		TotalScore:      total,
		Confidence:      float64(points) / maxDataPoints,
		ConfidenceLevel: level,
		Components:      components,
		Rationale:       rationale,
	}
}

// WeightedContinuous combines six normalized inputs with a weight vector and
// scales the result by a confidence multiplier. The output is meant for
// ranking only. Its confidence is the raw multiplier: the fixed Multiplier
// when set, otherwise the evidence Coverage.
type WeightedContinuous struct {
	Weights    Weights
	Multiplier *float64
}

var _ Policy = WeightedContinuous{}

func NewWeightedContinuous(weights Weights) (WeightedContinuous, error) {
	if err := weights.Validate(); err != nil {
		return WeightedContinuous{}, err
	}
	return WeightedContinuous{Weights: weights}, nil
}

func (WeightedContinuous) Kind() PolicyKind {
	return PolicyWeightedContinuous
}

func (p WeightedContinuous) Evaluate(signals dtos.Signals) Result {
	inputs := InputsFromSignals(signals)
	multiplier := Coverage(signals)
	if p.Multiplier != nil {
		multiplier = *p.Multiplier
	}
	multiplier = clampUnit(multiplier)
	return Result{
		Kind:       PolicyWeightedContinuous,
		Inputs:     inputs,
		Multiplier: multiplier,
		Weighted:   p.Aggregate(inputs, multiplier),
	}
}

// Aggregate returns the weighted sum of the clamped inputs times the clamped multiplier.
func (p WeightedContinuous) Aggregate(in dtos.WeightedInputs, multiplier float64) float64 {
	w := p.Weights
	total := clampInput(in.Exposure)*w.Exposure +
		clampInput(in.Controls)*w.Controls +
		clampInput(in.VendorPosture)*w.VendorPosture +
		clampInput(in.Compliance)*w.Compliance +
		clampInput(in.Incidents)*w.Incidents +
		clampInput(in.DataHandling)*w.DataHandling
	return total * clampUnit(multiplier)
}

// clampInput maps NaN, infinities and non-positive values to 0.
func clampInput(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}

// incidentSaturation is the KEV count at which the incidents input reaches 0.
const incidentSaturation = 5

// InputsFromSignals derives the six continuous inputs, each in [0,1], from the
// same evidence ComponentSum uses.
func InputsFromSignals(signals dtos.Signals) dtos.WeightedInputs {
	stats := AggregateCVEStats(signals)
	exposure := ScoreExposure(stats)
	controls := ScoreControls(signals.Controls)
	vendor := ScoreVendorPosture(signals.VendorPosture)
	compliance := ScoreCompliance(signals.Compliance)

	incidents := 1 - float64(min(stats.KEVHits, incidentSaturation))/incidentSaturation

	dataHandling := 0.0
	if signals.Controls[ControlEncryptionAtRest] {
		dataHandling += 0.5
	}
	if signals.Compliance[ComplianceGDPRDPA] {
		dataHandling += 0.5
	}

	return dtos.WeightedInputs{
		Exposure:      ratioOf(exposure),
		Controls:      ratioOf(controls),
		VendorPosture: ratioOf(vendor),
		Compliance:    ratioOf(compliance),
		Incidents:     incidents,
		DataHandling:  dataHandling,
	}
}

func ratioOf(c dtos.ComponentScore) float64 {
	if c.Max == 0 {
		return 0
	}
	return float64(c.Score) / float64(c.Max)
}

func countTrue(m map[string]bool) int {
	return utils.Count(slices.Collect(maps.Values(m)), func(v bool) bool { return v })
}
