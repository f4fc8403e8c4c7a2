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
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/spf13/cobra"
)

func startSpinner(format dtos.OutputFormat, suffix string) func() {
	if format != dtos.OutputFormatTable {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

func NewAssessCommand() *cobra.Command {
	assessCmd := &cobra.Command{
		Use:   "assess <product>",
		Short: "Assess the security trust of a product",
		Long: `Resolves the product to its vendor, collects public security evidence and
prints a trust score with a markdown brief. With --offline only bundled
fixtures are read, with --snapshot and --replay a pinned snapshot is replayed
from the cache without any network access.`,
		Example: `  assessor assess Slack
  assessor assess "Acme Widget" --vendor Acme --url https://acme.example
  assessor assess PeaZip --sha1 8d5b8ff8b3e5a3d0c1e0b0f6e9f5d8c1a2b3c4d5 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFlag(cmd)
			if err != nil {
				return err
			}

			vendor, _ := cmd.Flags().GetString("vendor")
			url, _ := cmd.Flags().GetString("url")
			sha1, _ := cmd.Flags().GetString("sha1")

			req := dtos.AssessmentRequest{
				ResolveInput: dtos.ResolveInput{
					Product: args[0],
					Vendor:  vendor,
					URL:     url,
					SHA1:    sha1,
				},
				Offline:    cfg.Offline,
				SnapshotID: cfg.SnapshotID(),
			}

			return runInvoke(cmd.Context(), cfg, func(assessmentService shared.AssessmentService) error {
				stop := startSpinner(format, " Assessor: collecting evidence for "+req.Product)
				assessment, err := assessmentService.Assess(cmd.Context(), req)
				stop()
				if err != nil {
					return err
				}
				return PrintAssessment(cmd.OutOrStdout(), assessment, format)
			})
		},
	}

	assessCmd.Flags().String("vendor", "", "Vendor name, improves resolution of unknown products")
	assessCmd.Flags().String("url", "", "Product homepage")
	assessCmd.Flags().String("sha1", "", "SHA-1 of a distributed binary, resolved against the hint table")
	addOutputFlag(assessCmd)

	return assessCmd
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", string(dtos.OutputFormatTable), "Output format. Options: table, json, markdown")
}

func outputFlag(cmd *cobra.Command) (dtos.OutputFormat, error) {
	s, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	return parseOutputFormat(s)
}
