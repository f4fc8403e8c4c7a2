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

	"github.com/l3montree-dev/assessor/config"
	"github.com/l3montree-dev/assessor/database"
	"github.com/l3montree-dev/assessor/database/repositories"
	"github.com/l3montree-dev/assessor/evidence"
	"github.com/l3montree-dev/assessor/services"
	"go.uber.org/fx"
)

// coreModules wires everything an assessment needs, from the pool up to the
// assessment service.
func coreModules(c config.Config) fx.Option {
	return fx.Options(
		c.Module(),
		database.Module,
		repositories.Module,
		evidence.Module,
		services.Module,
	)
}

// runInvoke builds a short lived app, migrates the database, runs fn through
// fx.Invoke and tears the app down again. fn may take any provided type.
func runInvoke(ctx context.Context, c config.Config, fn any) error {
	app := fx.New(
		fx.NopLogger,
		coreModules(c),
		fx.Invoke(migrateOnStart),
		fx.Invoke(fn),
	)
	if err := app.Err(); err != nil {
		return err
	}
	// start and stop so the pool gets closed by its lifecycle hook
	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(ctx)
}
