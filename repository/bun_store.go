package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/keibaapi/models"
)

// BunStore implements Store on a bun connection.
type BunStore struct {
	db *bun.DB
}

// NewBunStore wraps db.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

var _ Store = (*BunStore)(nil)

func (s *BunStore) RaceDates(ctx context.Context) ([]string, error) {
	dates := []string{}
	err := s.db.NewSelect().
		TableExpr("races").
		ColumnExpr("DISTINCT (race_time AT TIME ZONE 'UTC')::date::text AS date").
		Where("race_time IS NOT NULL").
		OrderExpr("date DESC").
		Scan(ctx, &dates)
	if err != nil {
		return nil, fmt.Errorf("race dates: %w", err)
	}
	return dates, nil
}

func (s *BunStore) RacesBetween(ctx context.Context, from, to time.Time) ([]models.Race, error) {
	races := []models.Race{}
	err := s.db.NewSelect().
		Model(&races).
		Where("rc.race_time >= ?", from).
		Where("rc.race_time < ?", to).
		OrderExpr("rc.race_time ASC, rc.track ASC, rc.number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("races between %s and %s: %w", from, to, err)
	}
	return races, nil
}

func (s *BunStore) RaceDetail(ctx context.Context, id int) (*models.Race, error) {
	race := new(models.Race)
	err := s.db.NewSelect().
		Model(race).
		Where("rc.id = ?", id).
		Relation("Entries", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("e.bracket_number ASC, e.horse_number ASC")
		}).
		Relation("Entries.Horse").
		Relation("Entries.Jockey").
		Relation("Predicts").
		Relation("Results", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("r.rank ASC NULLS LAST, r.horse_number ASC")
		}).
		Relation("Payouts", orderByID("po")).
		Relation("RecommendedBets", orderByID("rb")).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("race %d: %w", id, err)
	}
	return race, nil
}

func (s *BunStore) Neighbours(ctx context.Context, id int) (Neighbours, error) {
	var raceTime sql.NullTime
	err := s.db.NewSelect().
		TableExpr("races").
		ColumnExpr("race_time").
		Where("id = ?", id).
		Scan(ctx, &raceTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Neighbours{}, ErrNotFound
		}
		return Neighbours{}, fmt.Errorf("race %d time: %w", id, err)
	}
	if !raceTime.Valid {
		return Neighbours{}, ErrNotFound
	}

	var n Neighbours
	if n.PrevRaceID, err = s.adjacent(ctx, "race_time < ?", "race_time DESC", raceTime.Time); err != nil {
		return Neighbours{}, err
	}
	if n.NextRaceID, err = s.adjacent(ctx, "race_time > ?", "race_time ASC", raceTime.Time); err != nil {
		return Neighbours{}, err
	}
	return n, nil
}

func (s *BunStore) adjacent(ctx context.Context, where, order string, t time.Time) (*int, error) {
	var id int
	err := s.db.NewSelect().
		TableExpr("races").
		ColumnExpr("id").
		Where(where, t).
		OrderExpr(order).
		Limit(1).
		Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("adjacent race: %w", err)
	}
	return &id, nil
}

func (s *BunStore) RacesWithBets(ctx context.Context, from, to time.Time) ([]models.Race, error) {
	races := []models.Race{}
	err := s.db.NewSelect().
		Model(&races).
		Where("rc.race_time >= ?", from).
		Where("rc.race_time <= ?", to).
		Where("EXISTS (SELECT 1 FROM recommended_bets b WHERE b.race_id = rc.id)").
		Relation("RecommendedBets", orderByID("rb")).
		Relation("Payouts", orderByID("po")).
		OrderExpr("rc.race_time DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("races with bets: %w", err)
	}
	return races, nil
}

func (s *BunStore) UserByName(ctx context.Context, username string) (*models.User, error) {
	user := new(models.User)
	err := s.db.NewSelect().Model(user).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user %q: %w", username, err)
	}
	return user, nil
}

func orderByID(alias string) func(*bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?.id ASC", bun.Ident(alias))
	}
}
