package stats

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Bet types as written on JRA tickets and payout tables.
const (
	BetTypeWin             = "単勝"
	BetTypePlace           = "複勝"
	BetTypeBracketQuinella = "枠連"
	BetTypeQuinella        = "馬連"
	BetTypeWide            = "ワイド"
	BetTypeExacta          = "馬単"
	BetTypeTrio            = "3連複"
	BetTypeTrifecta        = "3連単"
)

// ErrInvalidNumbers is returned when a numbers field cannot be normalised.
var ErrInvalidNumbers = errors.New("invalid bet numbers")

var betTypeAliases = map[string]string{
	"三連複": BetTypeTrio,
	"三連単": BetTypeTrifecta,
	"３連複": BetTypeTrio,
	"３連単": BetTypeTrifecta,
}

// selections is how many numbers a ticket of each known type carries.
var selections = map[string]int{
	BetTypeWin:             1,
	BetTypePlace:           1,
	BetTypeBracketQuinella: 2,
	BetTypeQuinella:        2,
	BetTypeWide:            2,
	BetTypeExacta:          2,
	BetTypeTrio:            3,
	BetTypeTrifecta:        3,
}

// NormalizeBetType trims the bet type and folds kanji/full-width spellings
// onto the canonical constants.
func NormalizeBetType(betType string) string {
	bt := strings.TrimSpace(betType)
	if canon, ok := betTypeAliases[bt]; ok {
		return canon
	}
	return bt
}

// Ordered reports whether finishing order matters for the bet type.
func Ordered(betType string) bool {
	switch NormalizeBetType(betType) {
	case BetTypeExacta, BetTypeTrifecta:
		return true
	}
	return false
}

// CanonicalNumbers rewrites a numbers field into the hyphen-joined form used
// by payouts. Unordered bet types are sorted ascending.
func CanonicalNumbers(betType, raw string) (string, error) {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case '-', ',', '→', '>', '＞', '、', ' ', '\t':
			return true
		}
		return false
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: empty", ErrInvalidNumbers)
	}

	bt := NormalizeBetType(betType)
	if want, ok := selections[bt]; ok && want != len(parts) {
		return "", fmt.Errorf("%w: %s needs %d numbers, got %q", ErrInvalidNumbers, bt, want, raw)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return "", fmt.Errorf("%w: %q", ErrInvalidNumbers, raw)
		}
		nums[i] = n
	}
	if !Ordered(bt) {
		slices.Sort(nums)
	}

	return joinNumbers(nums), nil
}

func joinNumbers(nums []int) string {
	s := make([]string, len(nums))
	for i, n := range nums {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, "-")
}
