// Package repository is the data-access layer over PostgreSQL.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/padraicbc/keibaapi/models"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// Neighbours holds the races run immediately before and after a race.
type Neighbours struct {
	PrevRaceID *int `json:"prevRaceId,omitempty"`
	NextRaceID *int `json:"nextRaceId,omitempty"`
}

// Store is everything the API reads from the database.
type Store interface {
	// RaceDates lists the UTC dates that have races, newest first.
	RaceDates(ctx context.Context) ([]string, error)
	// RacesBetween lists races with from <= race_time < to, earliest first.
	RacesBetween(ctx context.Context, from, to time.Time) ([]models.Race, error)
	// RaceDetail loads a race with entries, predictions, results, payouts
	// and recommended bets.
	RaceDetail(ctx context.Context, id int) (*models.Race, error)
	Neighbours(ctx context.Context, id int) (Neighbours, error)
	// RacesWithBets lists races within [from, to] that have at least one
	// recommended bet, newest first, with bets and payouts loaded.
	RacesWithBets(ctx context.Context, from, to time.Time) ([]models.Race, error)
	UserByName(ctx context.Context, username string) (*models.User, error)
}
