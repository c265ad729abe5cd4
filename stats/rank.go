package stats

import "sort"

// Prediction is a model score for one runner.
type Prediction struct {
	HorseNumber int
	Score       float64
}

// Candidate is a runner picked for a betting plan.
type Candidate struct {
	HorseNumber int     `json:"horseNumber"`
	HorseName   string  `json:"horseName,omitempty"`
	Score       float64 `json:"score"`
}

var marks = []string{"◎", "○", "▲", "△"}

// MarkOther is given to every runner below the marked places.
const MarkOther = "×"

// Rank orders predictions by descending score. Ties keep input order.
func Rank(preds []Prediction) []Candidate {
	out := make([]Candidate, len(preds))
	for i, p := range preds {
		out[i] = Candidate{HorseNumber: p.HorseNumber, Score: p.Score}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Marks returns the prediction mark for each horse number.
func Marks(preds []Prediction) map[int]string {
	ranked := Rank(preds)
	out := make(map[int]string, len(ranked))
	for i, c := range ranked {
		m := MarkOther
		if i < len(marks) {
			m = marks[i]
		}
		out[c.HorseNumber] = m
	}
	return out
}
