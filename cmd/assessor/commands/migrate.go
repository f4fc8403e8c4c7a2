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
	"log/slog"

	"github.com/l3montree-dev/assessor/database"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and print the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Replay {
				slog.Warn("replay mode uses a read-only pool, migrations are skipped")
				return nil
			}
			return runInvoke(cmd.Context(), cfg, func(db shared.DB) error {
				// runs even when DISABLE_AUTOMIGRATE is set
				if err := database.RunMigrationsWithDB(db); err != nil {
					return err
				}
				version, dirty, err := database.GetMigrationVersionWithDB(db)
				if err != nil {
					return err
				}
				slog.Info("database schema", "version", version, "dirty", dirty)
				return nil
			})
		},
	}
}
