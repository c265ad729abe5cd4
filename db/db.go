package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"

	"github.com/padraicbc/keibaapi/config"
	"github.com/padraicbc/keibaapi/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

// tables lists every model in dependency order. Relations are bun joins
// only; no foreign keys are created, so cmd/import can load in any order.
var tables = []interface{}{
	(*models.User)(nil),
	(*models.HorseMaster)(nil),
	(*models.JockeyMaster)(nil),
	(*models.Race)(nil),
	(*models.Entry)(nil),
	(*models.Predict)(nil),
	(*models.Result)(nil),
	(*models.Payout)(nil),
	(*models.RecommendedBet)(nil),
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []struct{ name, table, cols string }{
		{"entries_no_dupes", "entries", "race_id, horse_number"},
		{"predicts_no_dupes", "predicts", "race_id, horse_number"},
		{"payouts_no_dupes", "payouts", "race_id, bet_type, numbers"},
	}
	for _, c := range constraints {
		stmt := fmt.Sprintf(
			`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s); END IF; END $$`,
			c.name, c.table, c.name, c.cols,
		)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			zap.L().Warn("add constraint failed", zap.String("constraint", c.name), zap.Error(err))
		}
	}

	// users predates created_at
	if _, err := db.ExecContext(ctx,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS created_at timestamptz NOT NULL DEFAULT current_timestamp`,
	); err != nil {
		return fmt.Errorf("add users.created_at: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS races_race_time_idx ON races (race_time)`,
		`CREATE INDEX IF NOT EXISTS recommended_bets_race_id_idx ON recommended_bets (race_id)`,
		`CREATE INDEX IF NOT EXISTS payouts_race_id_idx ON payouts (race_id)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
