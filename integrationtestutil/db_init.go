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

package integrationtestutil

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/assessor/database"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "assessor"
	dbUser     = "user"
	dbPassword = "password"
)

// TestDatabase bundles a migrated database running in a container.
type TestDatabase struct {
	DB     shared.DB
	Pool   *pgxpool.Pool
	Config database.PoolConfig
}

// InitDatabaseContainer starts postgres, applies the embedded migrations and
// returns the handles together with a terminate function.
func InitDatabaseContainer() (TestDatabase, func()) {
	ctx := context.Background()

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)

	terminate := func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if err != nil {
		slog.Info("failed to start postgres container", "error", err)
		panic(err)
	}

	host, _ := postgresC.Host(ctx)
	port, _ := postgresC.MappedPort(ctx, "5432")

	cfg := database.PoolConfig{
		User:            dbUser,
		Password:        dbPassword,
		Host:            host,
		Port:            port.Port(),
		DBName:          dbName,
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MinConns:        1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 5 * time.Minute,
	}

	pool, err := database.NewPgxConnPool(cfg)
	if err != nil {
		log.Printf("failed to connect to database: %s", err)
		panic(err)
	}
	db, err := database.NewGormDB(pool)
	if err != nil {
		log.Printf("failed to open gorm: %s", err)
		panic(err)
	}

	// Run embedded migrations to ensure the DB schema matches the project's
	// migration files.
	if err := database.RunMigrationsWithDB(db); err != nil {
		log.Printf("failed to run migrations: %s", err)
		panic(err)
	}

	return TestDatabase{DB: db, Pool: pool, Config: cfg}, func() {
		pool.Close()
		terminate()
	}
}

// ReadOnlyPool opens a second pool on the same database with read-only sessions.
func (d TestDatabase) ReadOnlyPool() (shared.DB, func(), error) {
	cfg := d.Config
	cfg.ReadOnly = true
	pool, err := database.NewPgxConnPool(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.NewGormDB(pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return db, pool.Close, nil
}
