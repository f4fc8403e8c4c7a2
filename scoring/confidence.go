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
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/utils"
)

// LowConfidenceCaveat is appended to the overall rationale of low confidence scores.
const LowConfidenceCaveat = "Limited public data - recommend direct vendor assessment."

// maxDataPoints is the number of independent evidence categories.
const maxDataPoints = 4

// DataPoints counts the evidence categories that carried data: vulnerability
// data, vendor posture, compliance and KEV data.
func DataPoints(signals dtos.Signals) int {
	points := 0
	if len(signals.NVDCVEs) > 0 {
		points++
	}
	if utils.AnyTrue(signals.VendorPosture) {
		points++
	}
	if utils.AnyTrue(signals.Compliance) {
		points++
	}
	if len(signals.CISAKEV) > 0 {
		points++
	}
	return points
}

func ConfidenceLevel(points int) dtos.ConfidenceLevel {
	switch {
	case points >= 3:
		return dtos.ConfidenceHigh
	case points >= 2:
		return dtos.ConfidenceMedium
	default:
		return dtos.ConfidenceLow
	}
}

// Coverage is the share of evidence categories that carried data, in [0,1].
func Coverage(signals dtos.Signals) float64 {
	return float64(DataPoints(signals)) / maxDataPoints
}
