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
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/spf13/cobra"
)

func NewCompareCommand() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare <product> <product>...",
		Short: "Rank products by their weighted trust score",
		Long: `Assesses every product and ranks them with the weighted continuous policy.
Ties are broken by the trust score and then by product name.`,
		Example: `  assessor compare 7-Zip PeaZip WinRAR
  assessor compare Slack "Microsoft Teams" --offline -o markdown`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFlag(cmd)
			if err != nil {
				return err
			}

			req := dtos.CompareRequest{
				Offline:    cfg.Offline,
				SnapshotID: cfg.SnapshotID(),
			}
			for _, product := range args {
				req.Products = append(req.Products, dtos.AssessmentRequest{
					ResolveInput: dtos.ResolveInput{Product: product},
				})
			}

			return runInvoke(cmd.Context(), cfg, func(assessmentService shared.AssessmentService) error {
				stop := startSpinner(format, " Assessor: comparing products")
				comparison, err := assessmentService.Compare(cmd.Context(), req)
				stop()
				if err != nil {
					return err
				}
				return PrintComparison(cmd.OutOrStdout(), comparison, format)
			})
		},
	}
	addOutputFlag(compareCmd)

	return compareCmd
}
