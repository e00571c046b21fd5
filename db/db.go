package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/jwkim-dev/marathonapi/config"
	"github.com/jwkim-dev/marathonapi/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order. Results carry
// ON DELETE CASCADE foreign keys so deleting a runner or race deletes
// its results. Safe to run on every startup.
func CreateTables(ctx context.Context, db *bun.DB) error {
	parents := []interface{}{
		(*models.Runner)(nil),
		(*models.Race)(nil),
	}
	for _, model := range parents {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	_, err := db.NewCreateTable().
		Model((*models.Result)(nil)).
		IfNotExists().
		ForeignKey(`("runner_id") REFERENCES "runners" ("id") ON DELETE CASCADE`).
		ForeignKey(`("race_id") REFERENCES "races" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("creating table for %T: %w", (*models.Result)(nil), err)
	}

	return nil
}
