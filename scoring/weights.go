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
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Weights of the continuous scoring mode. They must sum to 1.
type Weights struct {
	Exposure      float64 `yaml:"exposure"`
	Controls      float64 `yaml:"controls"`
	VendorPosture float64 `yaml:"vendor_posture"`
	Compliance    float64 `yaml:"compliance"`
	Incidents     float64 `yaml:"incidents"`
	DataHandling  float64 `yaml:"data_handling"`
}

var DefaultWeights = Weights{
	Exposure:      0.30,
	Controls:      0.20,
	VendorPosture: 0.15,
	Compliance:    0.15,
	Incidents:     0.10,
	DataHandling:  0.10,
}

const weightTolerance = 1e-6

func (w Weights) values() []float64 {
	return []float64{w.Exposure, w.Controls, w.VendorPosture, w.Compliance, w.Incidents, w.DataHandling}
}

func (w Weights) Validate() error {
	sum := 0.0
	for _, v := range w.values() {
		if math.IsNaN(v) || v < 0 {
			return errors.Errorf("weights must be non-negative numbers, got %v", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > weightTolerance {
		return errors.Errorf("weights must sum to 1, got %.4f", sum)
	}
	return nil
}

// LoadWeights reads a yaml weights file. An empty path returns DefaultWeights.
func LoadWeights(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, errors.Wrap(err, "could not read weights file")
	}
	return ParseWeights(b)
}

func ParseWeights(b []byte) (Weights, error) {
	var w Weights
	if err := yaml.Unmarshal(b, &w); err != nil {
		return Weights{}, errors.Wrap(err, "could not parse weights")
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}
