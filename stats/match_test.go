package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchHit(t *testing.T) {
	bets := []Bet{{ID: 1, BetType: BetTypePlace, Numbers: "3", Stake: 400}}
	payouts := []Payout{{ID: 9, BetType: BetTypePlace, Numbers: "3", Amount: 150}}

	got := Match(bets, payouts)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsHit)
	assert.Equal(t, 600.0, got[0].ActualPayout)
	assert.Equal(t, bets[0], got[0].Bet)
}

func TestMatchRequiresSameTypeAndNumbers(t *testing.T) {
	bets := []Bet{
		{ID: 1, BetType: BetTypeWide, Numbers: "3-7", Stake: 100},
		{ID: 2, BetType: BetTypeWide, Numbers: "7-3", Stake: 100},
		{ID: 3, BetType: BetTypeQuinella, Numbers: "3-7", Stake: 100},
	}
	payouts := []Payout{{BetType: BetTypeWide, Numbers: "3-7", Amount: 420}}

	got := Match(bets, payouts)
	require.Len(t, got, 3)
	assert.True(t, got[0].IsHit)
	assert.Equal(t, 420.0, got[0].ActualPayout)
	// numbers are compared verbatim
	assert.False(t, got[1].IsHit)
	assert.False(t, got[2].IsHit)
	assert.Zero(t, got[2].ActualPayout)
}

func TestMatchUsesFirstPayout(t *testing.T) {
	bets := []Bet{{BetType: BetTypePlace, Numbers: "5", Stake: 100}}
	payouts := []Payout{
		{ID: 1, BetType: BetTypePlace, Numbers: "5", Amount: 130},
		{ID: 2, BetType: BetTypePlace, Numbers: "5", Amount: 990},
	}

	got := Match(bets, payouts)
	assert.Equal(t, 130.0, got[0].ActualPayout)
}

func TestMatchZeroStake(t *testing.T) {
	got := Match(
		[]Bet{{BetType: BetTypeWin, Numbers: "1", Stake: 0}},
		[]Payout{{BetType: BetTypeWin, Numbers: "1", Amount: 250}},
	)
	assert.True(t, got[0].IsHit)
	assert.Zero(t, got[0].ActualPayout)
}

func TestMatchNoPayouts(t *testing.T) {
	bets := []Bet{
		{BetType: BetTypePlace, Numbers: "1", Stake: 400},
		{BetType: BetTypeTrio, Numbers: "1-2-3", Stake: 100},
	}
	got := Match(bets, nil)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.False(t, r.IsHit)
		assert.Zero(t, r.ActualPayout)
	}
	assert.Empty(t, Match(nil, nil))
}

func TestMatchIsIdempotent(t *testing.T) {
	bets := []Bet{
		{ID: 1, BetType: BetTypePlace, Numbers: "2", Stake: 300},
		{ID: 2, BetType: BetTypeWide, Numbers: "2-9", Stake: 100},
	}
	payouts := []Payout{
		{BetType: BetTypePlace, Numbers: "2", Amount: 110},
		{BetType: BetTypeWide, Numbers: "2-9", Amount: 1230},
	}
	assert.Equal(t, Match(bets, payouts), Match(bets, payouts))
}

func TestReturnIsExact(t *testing.T) {
	// 1.1 * 300 drifts in binary floating point
	assert.Equal(t, 330.0, Return(110, 300))
	assert.Equal(t, 600.0, Return(150, 400))
	assert.Equal(t, 12.5, Return(250, 5))
	assert.Zero(t, Return(150, 0))
}
