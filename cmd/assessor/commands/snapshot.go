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
	"maps"

	"github.com/l3montree-dev/assessor/services"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func NewSnapshotCommand() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Create and inspect evidence snapshots",
	}

	createCmd := &cobra.Command{
		Use:   "create <snapshot-id>",
		Short: "Create a snapshot pinning the current parser versions",
		Long: `Creates the snapshot row and its metadata file. Creating an existing snapshot
is a no-op. The dependency lock records the parser version of every collector,
extra entries can be added with --lock.`,
		Example: `  assessor snapshot create 2025-10-01
  assessor snapshot create release-42 --lock hints=2025-09`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := cmd.Flags().GetStringToString("lock")
			if err != nil {
				return err
			}
			format, err := outputFlag(cmd)
			if err != nil {
				return err
			}

			snapshotID := args[0]
			return runInvoke(cmd.Context(), cfg, fx.Annotate(
				func(snapshotService shared.SnapshotService, collectors []shared.Collector) error {
					lock := services.DependencyLock(collectors)
					maps.Copy(lock, extra)

					if err := snapshotService.CreateSnapshot(cmd.Context(), snapshotID, lock); err != nil {
						return err
					}
					snapshot, err := snapshotService.GetSnapshot(cmd.Context(), snapshotID)
					if err != nil {
						return err
					}
					if snapshot == nil {
						return errors.Errorf("snapshot %s could not be read back", snapshotID)
					}
					return PrintSnapshot(cmd.OutOrStdout(), snapshot.ToDTO(), format)
				},
				fx.ParamTags(``, `group:"collectors"`),
			))
		},
	}
	createCmd.Flags().StringToString("lock", nil, "Additional dependency lock entries, e.g. --lock hints=2025-09")
	addOutputFlag(createCmd)

	showCmd := &cobra.Command{
		Use:   "show <snapshot-id>",
		Short: "Show a snapshot and its dependency lock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFlag(cmd)
			if err != nil {
				return err
			}

			snapshotID := args[0]
			return runInvoke(cmd.Context(), cfg, func(snapshotService shared.SnapshotService) error {
				snapshot, err := snapshotService.GetSnapshot(cmd.Context(), snapshotID)
				if err != nil {
					return err
				}
				if snapshot == nil {
					return errors.Errorf("snapshot %s not found", snapshotID)
				}
				return PrintSnapshot(cmd.OutOrStdout(), snapshot.ToDTO(), format)
			})
		},
	}
	addOutputFlag(showCmd)

	snapshotCmd.AddCommand(createCmd, showCmd)
	return snapshotCmd
}
