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
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/scoring"
	"github.com/pkg/errors"
)

var componentOrder = []string{
	scoring.ComponentExposure,
	scoring.ComponentControls,
	scoring.ComponentVendor,
	scoring.ComponentCompliance,
}

func parseOutputFormat(s string) (dtos.OutputFormat, error) {
	switch f := dtos.OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case dtos.OutputFormatTable, dtos.OutputFormatJSON, dtos.OutputFormatMarkdown:
		return f, nil
	default:
		return "", errors.Errorf("unknown output format %q, use table, json or markdown", s)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func scoreColor(score int) text.Color {
	switch {
	case score >= 70:
		return text.FgGreen
	case score >= 40:
		return text.FgYellow
	default:
		return text.FgRed
	}
}

func PrintAssessment(w io.Writer, a dtos.Assessment, format dtos.OutputFormat) error {
	switch format {
	case dtos.OutputFormatJSON:
		return writeJSON(w, a)
	case dtos.OutputFormatMarkdown:
		_, err := fmt.Fprintln(w, a.Brief)
		return err
	}

	tw := table.NewWriter()
	tw.SetAllowedRowLength(130)
	tw.AppendRows([]table.Row{
		{"Product:", a.Entity.Product},
		{"Vendor:", a.Entity.Vendor},
		{"Category:", a.Entity.Category},
		{"Homepage:", text.FgBlue.Sprint(a.Entity.Homepage)},
	})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Trust Score:", scoreColor(a.TrustScore.TotalScore).Sprintf("%d/100", a.TrustScore.TotalScore)})
	tw.AppendRow(table.Row{"Confidence:", fmt.Sprintf("%.1f%% (%s)", a.TrustScore.Confidence*100, a.TrustScore.ConfidenceLevel)})
	for _, name := range componentOrder {
		c, ok := a.TrustScore.Components[name]
		if !ok {
			continue
		}
		tw.AppendRow(table.Row{name, fmt.Sprintf("%d/%d  %s", c.Score, c.Max, text.WrapText(c.Rationale, 80))})
	}
	if a.TrustScore.Rationale != "" {
		tw.AppendRow(table.Row{"Rationale:", text.WrapText(a.TrustScore.Rationale, 80)})
	}
	if a.SnapshotID != nil {
		tw.AppendRow(table.Row{"Snapshot:", *a.SnapshotID})
	}
	if len(a.Alternatives) > 0 {
		tw.AppendSeparator()
		for _, alt := range a.Alternatives {
			tw.AppendRow(table.Row{"Alternative:", fmt.Sprintf("%s (%s)", alt.Product, alt.Vendor)})
		}
	}
	if len(a.Warnings) > 0 {
		tw.AppendSeparator()
		for _, warning := range a.Warnings {
			tw.AppendRow(table.Row{text.FgYellow.Sprint("Warning:"), text.WrapText(warning, 80)})
		}
	}

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func PrintComparison(w io.Writer, c dtos.Comparison, format dtos.OutputFormat) error {
	switch format {
	case dtos.OutputFormatJSON:
		return writeJSON(w, c)
	case dtos.OutputFormatMarkdown:
		var sb strings.Builder
		sb.WriteString("| Rank | Product | Vendor | Weighted | Trust Score | Confidence |\n")
		sb.WriteString("|---|---|---|---|---|---|\n")
		for _, e := range c.Entries {
			fmt.Fprintf(&sb, "| %d | %s | %s | %.3f | %d | %s |\n", e.Rank, e.Entity.Product, e.Entity.Vendor, e.Weighted, e.TrustScore.TotalScore, e.TrustScore.ConfidenceLevel)
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	tw := table.NewWriter()
	tw.SetAllowedRowLength(130)
	tw.AppendHeader(table.Row{"Rank", "Product", "Vendor", "Weighted", "Trust Score", "Confidence"})
	entries := slices.Clone(c.Entries)
	slices.SortStableFunc(entries, func(a, b dtos.ComparisonEntry) int { return a.Rank - b.Rank })
	for _, e := range entries {
		tw.AppendRow(table.Row{
			e.Rank,
			e.Entity.Product,
			e.Entity.Vendor,
			fmt.Sprintf("%.3f", e.Weighted),
			scoreColor(e.TrustScore.TotalScore).Sprint(e.TrustScore.TotalScore),
			e.TrustScore.ConfidenceLevel,
		})
	}
	tw.AppendFooter(table.Row{"", "", "", c.Policy})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func PrintSnapshot(w io.Writer, s dtos.SnapshotDTO, format dtos.OutputFormat) error {
	if format == dtos.OutputFormatJSON {
		return writeJSON(w, s)
	}

	tw := table.NewWriter()
	tw.AppendRow(table.Row{"Snapshot:", s.SnapshotID})
	tw.AppendRow(table.Row{"Created:", s.CreatedAt.UTC().Format("2006-01-02 15:04:05Z07:00")})
	keys := make([]string, 0, len(s.DependencyLock))
	for k := range s.DependencyLock {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		tw.AppendRow(table.Row{k, s.DependencyLock[k]})
	}
	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
