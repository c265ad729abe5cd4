package stats

import "github.com/shopspring/decimal"

var perHundred = decimal.NewFromInt(100)

// Match pairs every bet with the first payout of the same bet type and
// numbers. Results keep the order of bets. Numbers are compared as stored,
// so both sides must already be in canonical form (see CanonicalNumbers).
func Match(bets []Bet, payouts []Payout) []BetResult {
	out := make([]BetResult, len(bets))
	for i, b := range bets {
		out[i] = BetResult{Bet: b}
		p, ok := findPayout(payouts, b.BetType, b.Numbers)
		if !ok {
			continue
		}
		out[i].IsHit = true
		out[i].ActualPayout = Return(p.Amount, b.Stake)
	}
	return out
}

// Return is the yen returned on stake for a payout quoted per 100 yen.
func Return(amount, stake int64) float64 {
	if stake == 0 {
		return 0
	}
	return decimal.NewFromInt(amount).
		Div(perHundred).
		Mul(decimal.NewFromInt(stake)).
		InexactFloat64()
}

func findPayout(payouts []Payout, betType, numbers string) (Payout, bool) {
	for _, p := range payouts {
		if p.BetType == betType && p.Numbers == numbers {
			return p, true
		}
	}
	return Payout{}, false
}
