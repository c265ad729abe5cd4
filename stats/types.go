// Package stats matches recommended bets against official payouts and
// reduces the outcome into hit-rate and return-rate summaries.
//
// Everything here is a pure function of its arguments. Callers load the
// records, hand them over as plain values and render what comes back.
package stats

// Bet is a recommended bet as seen by the matcher.
type Bet struct {
	ID      int    `json:"id"`
	BetType string `json:"betType"`
	Numbers string `json:"numbers"`
	// Stake in yen.
	Stake int64 `json:"bet"`
}

// Payout is one official payout line. Amount is yen per 100 yen staked.
type Payout struct {
	ID      int    `json:"id"`
	BetType string `json:"betType"`
	Numbers string `json:"numbers"`
	Amount  int64  `json:"payout"`
}

// BetResult is the outcome of a single bet after matching.
type BetResult struct {
	Bet          Bet     `json:"recommendedBet"`
	IsHit        bool    `json:"isHit"`
	ActualPayout float64 `json:"actualPayout"`
}

// BetTypeStatistics summarises the bets of a single bet type.
type BetTypeStatistics struct {
	BetType     string  `json:"betType"`
	TotalBets   int     `json:"totalBets"`
	HitBets     int     `json:"hitBets"`
	TotalAmount int64   `json:"totalAmount"`
	TotalReturn float64 `json:"totalReturn"`
	HitRate     float64 `json:"hitRate"`
	ReturnRate  float64 `json:"returnRate"`
}

// BetStatistics summarises a set of bets, for one race or many.
type BetStatistics struct {
	TotalBets    int                 `json:"totalBets"`
	TotalAmount  int64               `json:"totalAmount"`
	TotalReturn  float64             `json:"totalReturn"`
	HitRate      float64             `json:"hitRate"`
	ReturnRate   float64             `json:"returnRate"`
	Profit       float64             `json:"profit"`
	BetTypeStats []BetTypeStatistics `json:"betTypeStats"`
}

// percent returns part/whole*100, or 0 when whole is not positive.
func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// tally accumulates the counters of one bet type.
type tally struct {
	betType     string
	totalBets   int
	hitBets     int
	totalAmount int64
	totalReturn float64
}

func (t *tally) statistics() BetTypeStatistics {
	return BetTypeStatistics{
		BetType:     t.betType,
		TotalBets:   t.totalBets,
		HitBets:     t.hitBets,
		TotalAmount: t.totalAmount,
		TotalReturn: t.totalReturn,
		HitRate:     percent(float64(t.hitBets), float64(t.totalBets)),
		ReturnRate:  percent(t.totalReturn, float64(t.totalAmount)),
	}
}

// tallies groups counters by bet type, remembering first-seen order.
type tallies struct {
	order  []string
	byType map[string]*tally
}

func newTallies() *tallies {
	return &tallies{byType: map[string]*tally{}}
}

func (ts *tallies) get(betType string) *tally {
	t, ok := ts.byType[betType]
	if !ok {
		t = &tally{betType: betType}
		ts.byType[betType] = t
		ts.order = append(ts.order, betType)
	}
	return t
}

func (ts *tallies) list() []BetTypeStatistics {
	out := make([]BetTypeStatistics, 0, len(ts.order))
	for _, k := range ts.order {
		out = append(out, ts.byType[k].statistics())
	}
	return out
}
