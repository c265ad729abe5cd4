package stats

import (
	"slices"
	"strconv"
	"strings"
)

// PlanConfig sets the stakes of a betting plan.
type PlanConfig struct {
	// PlaceTiers are the place stakes from the top pick down. Their count
	// also caps how many candidates enter the plan.
	PlaceTiers []int64
	// UnitStake is paid on every wide and trio combination.
	UnitStake int64
}

// DefaultPlanConfig is 400/300/200/100 on place and 100 per combination.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{PlaceTiers: []int64{400, 300, 200, 100}, UnitStake: 100}
}

// PlaceBet is a place stake on one candidate.
type PlaceBet struct {
	Horse  Candidate `json:"horse"`
	Amount int64     `json:"amount"`
}

// Combination is a boxed wide or trio ticket.
type Combination struct {
	Horses []Candidate `json:"horses"`
	Amount int64       `json:"amount"`
}

// Plan is the set of tickets derived from the ranked candidates.
type Plan struct {
	Candidates []Candidate   `json:"candidates"`
	Place      []PlaceBet    `json:"place"`
	Wide       []Combination `json:"wide"`
	Trio       []Combination `json:"trio"`
	Box        string        `json:"box"`
	PlaceCost  int64         `json:"placeCost"`
	WideCost   int64         `json:"wideCost"`
	TrioCost   int64         `json:"trioCost"`
	TotalCost  int64         `json:"totalCost"`
}

// BuildPlan derives place, wide and trio tickets from candidates ranked by
// descending score. Only the first len(cfg.PlaceTiers) candidates are used.
func BuildPlan(ranked []Candidate, cfg PlanConfig) Plan {
	n := min(len(ranked), len(cfg.PlaceTiers))
	picks := append([]Candidate{}, ranked[:n]...)

	p := Plan{
		Candidates: picks,
		Place:      make([]PlaceBet, 0, n),
		Wide:       boxes(picks, 2, cfg.UnitStake),
		Trio:       boxes(picks, 3, cfg.UnitStake),
		Box:        boxLabel(picks),
	}
	for i, c := range picks {
		p.Place = append(p.Place, PlaceBet{Horse: c, Amount: cfg.PlaceTiers[i]})
		p.PlaceCost += cfg.PlaceTiers[i]
	}
	p.WideCost = cfg.UnitStake * int64(len(p.Wide))
	p.TrioCost = cfg.UnitStake * int64(len(p.Trio))
	p.TotalCost = p.PlaceCost + p.WideCost + p.TrioCost

	return p
}

// Bets lists the plan's tickets in the form the matcher expects.
func (p Plan) Bets() []Bet {
	out := make([]Bet, 0, len(p.Place)+len(p.Wide)+len(p.Trio))
	for _, pb := range p.Place {
		out = append(out, Bet{
			BetType: BetTypePlace,
			Numbers: strconv.Itoa(pb.Horse.HorseNumber),
			Stake:   pb.Amount,
		})
	}
	for _, c := range p.Wide {
		out = append(out, Bet{BetType: BetTypeWide, Numbers: comboNumbers(c.Horses), Stake: c.Amount})
	}
	for _, c := range p.Trio {
		out = append(out, Bet{BetType: BetTypeTrio, Numbers: comboNumbers(c.Horses), Stake: c.Amount})
	}
	return out
}

// Combinations returns every k-subset of {0..n-1} as ascending index
// slices, in lexicographic order.
func Combinations(n, k int) [][]int {
	if k <= 0 || k > n {
		return nil
	}
	var out [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		out = append(out, slices.Clone(idx))
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func boxes(picks []Candidate, k int, stake int64) []Combination {
	combos := Combinations(len(picks), k)
	out := make([]Combination, 0, len(combos))
	for _, idx := range combos {
		horses := make([]Candidate, k)
		for i, j := range idx {
			horses[i] = picks[j]
		}
		out = append(out, Combination{Horses: horses, Amount: stake})
	}
	return out
}

func sortedNumbers(cs []Candidate) []int {
	nums := make([]int, len(cs))
	for i, c := range cs {
		nums[i] = c.HorseNumber
	}
	slices.Sort(nums)
	return nums
}

func comboNumbers(cs []Candidate) string {
	return joinNumbers(sortedNumbers(cs))
}

func boxLabel(cs []Candidate) string {
	nums := sortedNumbers(cs)
	s := make([]string, len(nums))
	for i, n := range nums {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}
