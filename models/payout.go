package models

import "github.com/uptrace/bun"

// Payout is an official dividend. Payout is yen per 100 yen staked and
// Numbers is hyphen-joined, ascending for unordered bet types.
type Payout struct {
	bun.BaseModel `bun:"table:payouts,alias:po"`

	ID      int    `bun:"id,pk,autoincrement" json:"id"`
	RaceID  int    `bun:"race_id,notnull" json:"race_id"`
	BetType string `bun:"bet_type,notnull" json:"bet_type"`
	Numbers string `bun:"numbers,notnull" json:"numbers"`
	Payout  int64  `bun:"payout,notnull" json:"payout"`
}

// RecommendedBet is a ticket suggested by the prediction pipeline.
// Payout holds the realised return recorded upstream, 0 when it missed.
type RecommendedBet struct {
	bun.BaseModel `bun:"table:recommended_bets,alias:rb"`

	ID      int    `bun:"id,pk,autoincrement" json:"id"`
	RaceID  int    `bun:"race_id,notnull" json:"race_id"`
	BetType string `bun:"bet_type,notnull" json:"bet_type"`
	Numbers string `bun:"numbers,notnull" json:"numbers"`
	Bet     int64  `bun:"bet,notnull" json:"bet"`
	Payout  int64  `bun:"payout,notnull,default:0" json:"payout"`
}
