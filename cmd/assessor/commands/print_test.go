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

package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/scoring"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleAssessment() dtos.Assessment {
	return dtos.Assessment{
		Entity: dtos.EntityIdentity{Vendor: "Igor Pavlov", Product: "7-Zip", Category: "File Compression", Homepage: "https://www.7-zip.org"},
		TrustScore: dtos.TrustScore{
			TotalScore:      33,
			Confidence:      0.5,
			ConfidenceLevel: dtos.ConfidenceMedium,
			Components: map[string]dtos.ComponentScore{
				scoring.ComponentExposure: {Score: 9, Max: scoring.ExposureMax, Rationale: "3 CVEs, 1 in KEV"},
				scoring.ComponentControls: {Score: 0, Max: scoring.ControlsMax, Rationale: "None detected"},
			},
		},
		Brief:        "# Security Assessment: 7-Zip",
		Alternatives: []dtos.Alternative{{Product: "PeaZip", Vendor: "Giorgio Tani"}},
		Warnings:     []string{"controls: evidence unavailable"},
		SnapshotID:   shared.Ptr("2025-10-01"),
	}
}

func TestParseOutputFormat(t *testing.T) {
	f, err := parseOutputFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, dtos.OutputFormatJSON, f)

	_, err = parseOutputFormat("yaml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestPrintAssessment(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintAssessment(&buf, exampleAssessment(), dtos.OutputFormatTable))

		out := buf.String()
		assert.Contains(t, out, "7-Zip")
		assert.Contains(t, out, "33/100")
		assert.Contains(t, out, "PeaZip (Giorgio Tani)")
		assert.Contains(t, out, "2025-10-01")
		assert.Contains(t, out, "controls: evidence unavailable")
		// exposure is listed before controls
		assert.Less(t, strings.Index(out, "9/30"), strings.Index(out, "0/20"))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintAssessment(&buf, exampleAssessment(), dtos.OutputFormatJSON))

		var got dtos.Assessment
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 33, got.TrustScore.TotalScore)
	})

	t.Run("markdown prints the brief", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintAssessment(&buf, exampleAssessment(), dtos.OutputFormatMarkdown))
		assert.Equal(t, "# Security Assessment: 7-Zip\n", buf.String())
	})
}

func TestPrintComparison(t *testing.T) {
	c := dtos.Comparison{
		Policy: "weighted_continuous",
		Entries: []dtos.ComparisonEntry{
			{Rank: 2, Entity: dtos.EntityIdentity{Product: "7-Zip"}, Weighted: 0.21},
			{Rank: 1, Entity: dtos.EntityIdentity{Product: "PeaZip"}, Weighted: 0.35},
		},
	}

	t.Run("table is ordered by rank", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintComparison(&buf, c, dtos.OutputFormatTable))
		out := buf.String()
		assert.Less(t, strings.Index(out, "PeaZip"), strings.Index(out, "7-Zip"))
		assert.Contains(t, out, "0.350")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintComparison(&buf, c, dtos.OutputFormatMarkdown))
		assert.Contains(t, buf.String(), "| 1 | PeaZip |  | 0.350 | 0 |  |")
	})
}

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	err := PrintSnapshot(&buf, dtos.SnapshotDTO{
		SnapshotID:     "2025-10-01",
		CreatedAt:      time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
		DependencyLock: map[string]string{"nvd": "nvd-cve-v2@1", "cisa_kev": "cisa-kev-v1@1"},
	}, dtos.OutputFormatTable)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2025-10-01 12:00:00Z")
	assert.Less(t, strings.Index(out, "cisa_kev"), strings.Index(out, "nvd-cve-v2@1"))
}

func TestBindFlags(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("retries", 3, "")
	cmd.Flags().Bool("offline", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--offline"}))

	viper.Set("retries", 7)
	viper.Set("offline", false)
	bindFlags(cmd)

	retries, err := cmd.Flags().GetInt("retries")
	require.NoError(t, err)
	assert.Equal(t, 7, retries, "config values fill flags that were not given")

	offline, err := cmd.Flags().GetBool("offline")
	require.NoError(t, err)
	assert.True(t, offline, "explicit flags win over config values")
}
