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
	"context"
	"log/slog"
	"os"

	"github.com/l3montree-dev/assessor/controllers"
	"github.com/l3montree-dev/assessor/database"
	"github.com/l3montree-dev/assessor/router"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func migrateOnStart(db shared.DB) error {
	if cfg.Replay {
		slog.Info("replay mode, skipping migrations")
		return nil
	}
	if os.Getenv("DISABLE_AUTOMIGRATE") == "true" {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
		return nil
	}
	slog.Info("running database migrations...")
	return database.RunMigrationsWithDB(db)
}

func NewServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assessment http api",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				fx.NopLogger,
				coreModules(cfg),
				controllers.Module,
				router.Module,
				fx.Invoke(migrateOnStart),
				// we need to invoke the router to register its routes
				fx.Invoke(func(router.APIV1Router) {}),
			)
			if err := app.Err(); err != nil {
				return err
			}

			if err := app.Start(cmd.Context()); err != nil {
				return err
			}
			<-cmd.Context().Done()
			slog.Info("shutting down")

			stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
			defer cancel()
			return app.Stop(stopCtx)
		},
	}
	serveCmd.Flags().String("listen", ":8080", "Address the http server listens on")

	return serveCmd
}
