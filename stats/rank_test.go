package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	got := Rank([]Prediction{
		{HorseNumber: 1, Score: 0.2},
		{HorseNumber: 2, Score: 0.9},
		{HorseNumber: 3, Score: 0.5},
		{HorseNumber: 4, Score: 0.5},
	})
	nums := make([]int, len(got))
	for i, c := range got {
		nums[i] = c.HorseNumber
	}
	assert.Equal(t, []int{2, 3, 4, 1}, nums)
}

func TestMarks(t *testing.T) {
	got := Marks([]Prediction{
		{HorseNumber: 6, Score: 10},
		{HorseNumber: 1, Score: 50},
		{HorseNumber: 3, Score: 40},
		{HorseNumber: 8, Score: 30},
		{HorseNumber: 2, Score: 20},
	})
	assert.Equal(t, map[int]string{1: "◎", 3: "○", 8: "▲", 2: "△", 6: "×"}, got)
	assert.Empty(t, Marks(nil))
}
