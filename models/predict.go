package models

import "github.com/uptrace/bun"

// Predict is the model score given to a runner before the race.
type Predict struct {
	bun.BaseModel `bun:"table:predicts,alias:pd"`

	ID          int     `bun:"id,pk,autoincrement" json:"id"`
	RaceID      int     `bun:"race_id,notnull" json:"race_id"`
	HorseNumber int     `bun:"horse_number,notnull" json:"horse_number"`
	Score       float64 `bun:"score,notnull" json:"score"`
}
