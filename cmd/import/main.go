// cmd/import/main.go
// Copies race cards, predictions, results, payouts and recommended bets
// from the prediction pipeline's MySQL database into PostgreSQL.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/keiba?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/import
package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/keibaapi/config"
	bundb "github.com/padraicbc/keibaapi/db"
	applog "github.com/padraicbc/keibaapi/logger"
	"github.com/padraicbc/keibaapi/models"
	"github.com/padraicbc/keibaapi/stats"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		logger.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/keiba?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("open mysql", zap.Error(err))
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		logger.Fatal("ping mysql", zap.Error(err))
	}
	logger.Info("connected to MySQL")

	// --- PostgreSQL ---
	pgDB, err := bundb.Setup(ctx, cfg)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pgDB.Close()
	logger.Info("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}

	// The schema has no foreign keys, so tables load in any order.
	imp := &importer{src: myDB, dst: pgDB, log: logger}
	steps := []struct {
		name string
		fn   func(context.Context) (int, error)
	}{
		{"horse_masters", imp.horseMasters},
		{"jockey_masters", imp.jockeyMasters},
		{"races", imp.races},
		{"entries", imp.entries},
		{"predicts", imp.predicts},
		{"results", imp.results},
		{"payouts", imp.payouts},
		{"recommended_bets", imp.recommendedBets},
	}

	for _, s := range steps {
		start := time.Now()
		n, err := s.fn(ctx)
		if err != nil {
			logger.Fatal("import failed", zap.String("table", s.name), zap.Error(err))
		}
		logger.Info("table imported",
			zap.String("table", s.name),
			zap.Int("rows", n),
			zap.Duration("took", time.Since(start)),
		)
	}

	resetSequences(ctx, pgDB, logger)
	logger.Info("import complete")
}

type importer struct {
	src *sql.DB
	dst *bun.DB
	log *zap.Logger
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func nullTime(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time.UTC()
	return &t
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// copyRows streams query results from MySQL into PostgreSQL in batches of
// batchSize. Rows for which scan reports ok=false are skipped.
func copyRows[T any](ctx context.Context, imp *importer, query string, scan func(*sql.Rows) (T, bool, error)) (int, error) {
	rows, err := imp.src.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	batch := make([]T, 0, batchSize)
	total := 0
	for rows.Next() {
		r, ok, err := scan(rows)
		if err != nil {
			return total, err
		}
		if !ok {
			continue
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, imp.dst, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := bulkInsert(ctx, imp.dst, batch); err != nil {
		return total, err
	}
	return total + len(batch), nil
}

// normalize canonicalises a bet row, logging and rejecting rows that cannot be parsed.
func (imp *importer) normalize(table string, id int, betType, numbers string) (string, string, bool) {
	canon, err := stats.CanonicalNumbers(betType, numbers)
	if err != nil {
		imp.log.Warn("skipping row",
			zap.String("table", table),
			zap.Int("id", id),
			zap.String("bet_type", betType),
			zap.String("numbers", numbers),
			zap.Error(err),
		)
		return "", "", false
	}
	return stats.NormalizeBetType(betType), canon, true
}

// --- per-table imports ---

func (imp *importer) horseMasters(ctx context.Context) (int, error) {
	return copyRows(ctx, imp, "SELECT id, name FROM horse_masters",
		func(rows *sql.Rows) (models.HorseMaster, bool, error) {
			var r models.HorseMaster
			err := rows.Scan(&r.ID, &r.Name)
			return r, err == nil, err
		})
}

func (imp *importer) jockeyMasters(ctx context.Context) (int, error) {
	return copyRows(ctx, imp, "SELECT id, name FROM jockey_masters",
		func(rows *sql.Rows) (models.JockeyMaster, bool, error) {
			var r models.JockeyMaster
			err := rows.Scan(&r.ID, &r.Name)
			return r, err == nil, err
		})
}

func (imp *importer) races(ctx context.Context) (int, error) {
	return copyRows(ctx, imp,
		"SELECT id, race_time, track, number, name, course_type, distance FROM races",
		func(rows *sql.Rows) (models.Race, bool, error) {
			var (
				r        models.Race
				raceTime sql.NullTime
			)
			if err := rows.Scan(&r.ID, &raceTime, &r.Track, &r.Number, &r.Name, &r.CourseType, &r.Distance); err != nil {
				return r, false, err
			}
			r.RaceTime = nullTime(raceTime)
			return r, true, nil
		})
}

func (imp *importer) entries(ctx context.Context) (int, error) {
	return copyRows(ctx, imp,
		`SELECT id, race_id, horse_id, jockey_id, bracket_number, horse_number,
		        sex, age, jockey_weight
		 FROM entries`,
		func(rows *sql.Rows) (models.Entry, bool, error) {
			var (
				r        models.Entry
				jockeyID sql.NullInt64
				weight   sql.NullFloat64
			)
			if err := rows.Scan(&r.ID, &r.RaceID, &r.HorseID, &jockeyID, &r.BracketNumber, &r.HorseNumber,
				&r.Sex, &r.Age, &weight); err != nil {
				return r, false, err
			}
			r.JockeyID = nullInt(jockeyID)
			r.JockeyWeight = nullFloat(weight)
			return r, true, nil
		})
}

func (imp *importer) predicts(ctx context.Context) (int, error) {
	return copyRows(ctx, imp, "SELECT id, race_id, horse_number, score FROM predicts",
		func(rows *sql.Rows) (models.Predict, bool, error) {
			var r models.Predict
			err := rows.Scan(&r.ID, &r.RaceID, &r.HorseNumber, &r.Score)
			return r, err == nil, err
		})
}

func (imp *importer) results(ctx context.Context) (int, error) {
	return copyRows(ctx, imp,
		"SELECT id, race_id, `rank`, horse_number, horse_name, favorite, odds FROM results",
		func(rows *sql.Rows) (models.Result, bool, error) {
			var (
				r        models.Result
				rank     sql.NullInt64
				favorite sql.NullInt64
				odds     sql.NullFloat64
			)
			if err := rows.Scan(&r.ID, &r.RaceID, &rank, &r.HorseNumber, &r.HorseName, &favorite, &odds); err != nil {
				return r, false, err
			}
			r.Rank = nullInt(rank)
			r.Favorite = nullInt(favorite)
			r.Odds = nullFloat(odds)
			return r, true, nil
		})
}

func (imp *importer) payouts(ctx context.Context) (int, error) {
	return copyRows(ctx, imp, "SELECT id, race_id, bet_type, numbers, payout FROM payouts",
		func(rows *sql.Rows) (models.Payout, bool, error) {
			var r models.Payout
			if err := rows.Scan(&r.ID, &r.RaceID, &r.BetType, &r.Numbers, &r.Payout); err != nil {
				return r, false, err
			}
			var ok bool
			r.BetType, r.Numbers, ok = imp.normalize("payouts", r.ID, r.BetType, r.Numbers)
			return r, ok, nil
		})
}

func (imp *importer) recommendedBets(ctx context.Context) (int, error) {
	return copyRows(ctx, imp,
		"SELECT id, race_id, bet_type, numbers, bet, COALESCE(payout, 0) FROM recommended_bets",
		func(rows *sql.Rows) (models.RecommendedBet, bool, error) {
			var r models.RecommendedBet
			if err := rows.Scan(&r.ID, &r.RaceID, &r.BetType, &r.Numbers, &r.Bet, &r.Payout); err != nil {
				return r, false, err
			}
			var ok bool
			r.BetType, r.Numbers, ok = imp.normalize("recommended_bets", r.ID, r.BetType, r.Numbers)
			return r, ok, nil
		})
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB, logger *zap.Logger) {
	tables := []string{
		"horse_masters", "jockey_masters", "races", "entries",
		"predicts", "results", "payouts", "recommended_bets",
	}
	for _, t := range tables {
		seq := t + "_id_seq"
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(id) FROM %s), 1))",
			seq, t,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			logger.Warn("reset sequence", zap.String("sequence", seq), zap.Error(err))
		}
	}
	logger.Info("sequences reset")
}
