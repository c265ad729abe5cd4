package stats

// Aggregate combines per-race statistics into one summary.
//
// Totals are summed and the return rate is recomputed from them. The hit
// rate is each race's rate weighted by its bet count. Per-type entries are
// merged by bet type and both rates are recomputed from the merged sums.
func Aggregate(all []BetStatistics) BetStatistics {
	out := BetStatistics{BetTypeStats: []BetTypeStatistics{}}
	if len(all) == 0 {
		return out
	}

	ts := newTallies()
	var weightedHits float64
	for _, s := range all {
		out.TotalBets += s.TotalBets
		out.TotalAmount += s.TotalAmount
		out.TotalReturn += s.TotalReturn
		weightedHits += s.HitRate * float64(s.TotalBets)

		for _, bt := range s.BetTypeStats {
			t := ts.get(bt.BetType)
			t.totalBets += bt.TotalBets
			t.hitBets += bt.HitBets
			t.totalAmount += bt.TotalAmount
			t.totalReturn += bt.TotalReturn
		}
	}

	if out.TotalBets > 0 {
		out.HitRate = weightedHits / float64(out.TotalBets)
	}
	out.ReturnRate = percent(out.TotalReturn, float64(out.TotalAmount))
	out.Profit = out.TotalReturn - float64(out.TotalAmount)
	out.BetTypeStats = ts.list()

	return out
}
