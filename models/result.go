package models

import "github.com/uptrace/bun"

// Result is the official finishing record of one runner.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID          int      `bun:"id,pk,autoincrement" json:"id"`
	RaceID      int      `bun:"race_id,notnull" json:"race_id"`
	Rank        *int     `bun:"rank" json:"rank"`
	HorseNumber int      `bun:"horse_number,notnull" json:"horse_number"`
	HorseName   string   `bun:"horse_name,notnull" json:"horse_name"`
	Favorite    *int     `bun:"favorite" json:"favorite,omitempty"`
	Odds        *float64 `bun:"odds" json:"odds,omitempty"`
}
