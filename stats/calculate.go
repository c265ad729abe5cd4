package stats

import (
	"runtime"
	"sync"
)

// Calculate reduces the matched bets of one race into BetStatistics.
// BetTypeStats follows the order in which each bet type first appears.
func Calculate(results []BetResult) BetStatistics {
	ts := newTallies()
	var (
		hits        int
		totalAmount int64
		totalReturn float64
	)

	for _, r := range results {
		totalAmount += r.Bet.Stake
		totalReturn += r.ActualPayout

		t := ts.get(r.Bet.BetType)
		t.totalBets++
		t.totalAmount += r.Bet.Stake
		t.totalReturn += r.ActualPayout
		if r.IsHit {
			hits++
			t.hitBets++
		}
	}

	return BetStatistics{
		TotalBets:    len(results),
		TotalAmount:  totalAmount,
		TotalReturn:  totalReturn,
		HitRate:      percent(float64(hits), float64(len(results))),
		ReturnRate:   percent(totalReturn, float64(totalAmount)),
		Profit:       totalReturn - float64(totalAmount),
		BetTypeStats: ts.list(),
	}
}

// RaceBets holds the bets and payouts of a single race.
type RaceBets struct {
	Bets    []Bet
	Payouts []Payout
}

// CalculateRaces matches and reduces every race independently. Races are
// spread over at most GOMAXPROCS goroutines; the output lines up with the
// input.
func CalculateRaces(races []RaceBets) []BetStatistics {
	out := make([]BetStatistics, len(races))
	if len(races) == 0 {
		return out
	}

	workers := min(runtime.GOMAXPROCS(0), len(races))
	next := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				out[i] = Calculate(Match(races[i].Bets, races[i].Payouts))
			}
		}()
	}
	for i := range races {
		next <- i
	}
	close(next)
	wg.Wait()

	return out
}
