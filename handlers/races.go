package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/keibaapi/models"
	"github.com/padraicbc/keibaapi/report"
	"github.com/padraicbc/keibaapi/stats"
)

const unknownName = "不明"

type racesQuery struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type raceIDParam struct {
	ID int `param:"id" validate:"gt=0"`
}

type entryJSON struct {
	ID           int      `json:"id"`
	HorseNumber  int      `json:"horseNumber"`
	HorseName    string   `json:"horseName"`
	Sex          string   `json:"sex"`
	Age          int      `json:"age"`
	JockeyName   string   `json:"jockeyName"`
	JockeyWeight *float64 `json:"jockeyWeight,omitempty"`
	Mark         string   `json:"mark"`
}

type bracketJSON struct {
	BracketNumber int         `json:"bracketNumber"`
	Entries       []entryJSON `json:"entries"`
}

type payoutLine struct {
	ID      int    `json:"id"`
	Numbers string `json:"numbers"`
	Payout  int64  `json:"payout"`
}

type payoutGroup struct {
	BetType string       `json:"betType"`
	Payouts []payoutLine `json:"payouts"`
}

type raceDetailJSON struct {
	Race            models.Race         `json:"race"`
	Brackets        []bracketJSON       `json:"brackets"`
	Predicts        []*models.Predict   `json:"predicts"`
	Results         []*models.Result    `json:"results"`
	Payouts         []payoutGroup       `json:"payouts"`
	RecommendedBets []stats.BetResult   `json:"recommendedBets"`
	Statistics      stats.BetStatistics `json:"statistics"`
}

// Dates returns every date that has races, newest first.
func (h *Handler) Dates(c echo.Context) error {
	dates, err := h.store.RaceDates(c.Request().Context())
	if err != nil {
		return storeError(err, "dates")
	}
	return c.JSON(http.StatusOK, dates)
}

// Races returns the races of a UTC date, or of the next 24 hours when no
// date is given.
func (h *Handler) Races(c echo.Context) error {
	var q racesQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}

	from := h.opts.Now()
	if q.Date != "" {
		// validated above
		from, _ = time.Parse(report.DateLayout, q.Date)
	}

	races, err := h.store.RacesBetween(c.Request().Context(), from, from.Add(24*time.Hour))
	if err != nil {
		return storeError(err, "races")
	}
	return c.JSON(http.StatusOK, races)
}

// Race returns a race card with prediction marks, results, payouts and the
// recommended bets matched against those payouts.
func (h *Handler) Race(c echo.Context) error {
	var p raceIDParam
	if err := bindValid(c, &p); err != nil {
		return err
	}

	race, err := h.store.RaceDetail(c.Request().Context(), p.ID)
	if err != nil {
		return storeError(err, "race")
	}

	in := report.RaceBets(race)
	matched := stats.Match(in.Bets, in.Payouts)

	return c.JSON(http.StatusOK, raceDetailJSON{
		Race:            *race,
		Brackets:        groupEntriesByBracket(race.Entries, stats.Marks(predictions(race.Predicts))),
		Predicts:        orEmpty(race.Predicts),
		Results:         orEmpty(race.Results),
		Payouts:         groupPayoutsByBetType(race.Payouts),
		RecommendedBets: matched,
		Statistics:      stats.Calculate(matched),
	})
}

// Navigation returns the ids of the previous and next races by start time.
func (h *Handler) Navigation(c echo.Context) error {
	var p raceIDParam
	if err := bindValid(c, &p); err != nil {
		return err
	}

	n, err := h.store.Neighbours(c.Request().Context(), p.ID)
	if err != nil {
		return storeError(err, "race")
	}
	return c.JSON(http.StatusOK, n)
}

func predictions(pds []*models.Predict) []stats.Prediction {
	out := make([]stats.Prediction, len(pds))
	for i, p := range pds {
		out[i] = stats.Prediction{HorseNumber: p.HorseNumber, Score: p.Score}
	}
	return out
}

// groupEntriesByBracket groups runners by bracket, both levels ascending.
func groupEntriesByBracket(entries []*models.Entry, marks map[int]string) []bracketJSON {
	order := []int{}
	brackets := map[int]*bracketJSON{}

	for _, e := range entries {
		row := entryJSON{
			ID:           e.ID,
			HorseNumber:  e.HorseNumber,
			HorseName:    unknownName,
			Sex:          e.Sex,
			Age:          e.Age,
			JockeyName:   unknownName,
			JockeyWeight: e.JockeyWeight,
			Mark:         stats.MarkOther,
		}
		if e.Horse != nil {
			row.HorseName = e.Horse.Name
		}
		if e.Jockey != nil {
			row.JockeyName = e.Jockey.Name
		}
		if m, ok := marks[e.HorseNumber]; ok {
			row.Mark = m
		}

		if _, ok := brackets[e.BracketNumber]; !ok {
			order = append(order, e.BracketNumber)
			brackets[e.BracketNumber] = &bracketJSON{BracketNumber: e.BracketNumber, Entries: []entryJSON{}}
		}
		brackets[e.BracketNumber].Entries = append(brackets[e.BracketNumber].Entries, row)
	}

	sort.Ints(order)
	out := make([]bracketJSON, 0, len(order))
	for _, k := range order {
		b := brackets[k]
		sort.SliceStable(b.Entries, func(i, j int) bool { return b.Entries[i].HorseNumber < b.Entries[j].HorseNumber })
		out = append(out, *b)
	}
	return out
}

// groupPayoutsByBetType keeps the order in which bet types first appear.
func groupPayoutsByBetType(payouts []*models.Payout) []payoutGroup {
	order := []string{}
	groups := map[string]*payoutGroup{}

	for _, p := range payouts {
		if _, ok := groups[p.BetType]; !ok {
			order = append(order, p.BetType)
			groups[p.BetType] = &payoutGroup{BetType: p.BetType}
		}
		groups[p.BetType].Payouts = append(groups[p.BetType].Payouts, payoutLine{ID: p.ID, Numbers: p.Numbers, Payout: p.Payout})
	}

	out := make([]payoutGroup, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
