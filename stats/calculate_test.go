package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []BetResult {
	return Match(
		[]Bet{
			{ID: 1, BetType: BetTypePlace, Numbers: "4", Stake: 400},
			{ID: 2, BetType: BetTypeWide, Numbers: "4-8", Stake: 100},
			{ID: 3, BetType: BetTypePlace, Numbers: "8", Stake: 300},
			{ID: 4, BetType: BetTypeTrio, Numbers: "1-4-8", Stake: 100},
			{ID: 5, BetType: BetTypeWide, Numbers: "1-4", Stake: 100},
		},
		[]Payout{
			{BetType: BetTypePlace, Numbers: "4", Amount: 150},
			{BetType: BetTypeWide, Numbers: "4-8", Amount: 560},
		},
	)
}

func TestCalculate(t *testing.T) {
	s := Calculate(sampleResults())

	assert.Equal(t, 5, s.TotalBets)
	assert.Equal(t, int64(1000), s.TotalAmount)
	assert.Equal(t, 1160.0, s.TotalReturn)
	assert.Equal(t, 40.0, s.HitRate)
	assert.InDelta(t, 116.0, s.ReturnRate, 1e-9)
	assert.Equal(t, 160.0, s.Profit)

	require.Len(t, s.BetTypeStats, 3)
	assert.Equal(t, []string{BetTypePlace, BetTypeWide, BetTypeTrio}, betTypes(s.BetTypeStats))

	place := s.BetTypeStats[0]
	assert.Equal(t, 2, place.TotalBets)
	assert.Equal(t, 1, place.HitBets)
	assert.Equal(t, int64(700), place.TotalAmount)
	assert.Equal(t, 600.0, place.TotalReturn)
	assert.Equal(t, 50.0, place.HitRate)

	trio := s.BetTypeStats[2]
	assert.Zero(t, trio.HitRate)
	assert.Zero(t, trio.ReturnRate)
}

func TestCalculateWithoutPayouts(t *testing.T) {
	results := Match([]Bet{
		{BetType: BetTypePlace, Numbers: "1", Stake: 400},
		{BetType: BetTypePlace, Numbers: "2", Stake: 300},
		{BetType: BetTypeWide, Numbers: "1-2", Stake: 100},
	}, nil)

	s := Calculate(results)
	assert.Zero(t, s.HitRate)
	assert.Zero(t, s.TotalReturn)
	assert.Equal(t, -float64(s.TotalAmount), s.Profit)
	assert.Equal(t, int64(800), s.TotalAmount)
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	assert.Zero(t, s.TotalBets)
	assert.Zero(t, s.HitRate)
	assert.Zero(t, s.ReturnRate)
	assert.Zero(t, s.Profit)
	assert.NotNil(t, s.BetTypeStats)
	assert.Empty(t, s.BetTypeStats)
}

func TestCalculatePartitionsBets(t *testing.T) {
	s := Calculate(sampleResults())
	assertPartition(t, s)
}

func TestCalculateRaces(t *testing.T) {
	races := make([]RaceBets, 20)
	for i := range races {
		races[i] = RaceBets{
			Bets: []Bet{{BetType: BetTypePlace, Numbers: "1", Stake: int64(100 * (i + 1))}},
		}
		if i%2 == 0 {
			races[i].Payouts = []Payout{{BetType: BetTypePlace, Numbers: "1", Amount: 200}}
		}
	}

	got := CalculateRaces(races)
	require.Len(t, got, len(races))
	for i, s := range got {
		assert.Equal(t, int64(100*(i+1)), s.TotalAmount, "race %d", i)
		if i%2 == 0 {
			assert.Equal(t, 100.0, s.HitRate)
			assert.Equal(t, 2*float64(s.TotalAmount), s.TotalReturn)
		} else {
			assert.Zero(t, s.HitRate)
		}
	}
	assert.Empty(t, CalculateRaces(nil))
}

func betTypes(list []BetTypeStatistics) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.BetType
	}
	return out
}

func assertPartition(t *testing.T, s BetStatistics) {
	t.Helper()
	var bets int
	var amount int64
	var ret float64
	for _, bt := range s.BetTypeStats {
		bets += bt.TotalBets
		amount += bt.TotalAmount
		ret += bt.TotalReturn
	}
	assert.Equal(t, s.TotalBets, bets)
	assert.Equal(t, s.TotalAmount, amount)
	assert.InDelta(t, s.TotalReturn, ret, 1e-9)
}
