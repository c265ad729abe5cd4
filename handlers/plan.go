package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/keibaapi/report"
	"github.com/padraicbc/keibaapi/stats"
)

type planJSON struct {
	Plan       stats.Plan           `json:"plan"`
	Results    []stats.BetResult    `json:"results,omitempty"`
	Statistics *stats.BetStatistics `json:"statistics,omitempty"`
}

// Plan returns the place/wide/trio plan built from the race's top-ranked
// predictions. Once payouts are in, the plan's tickets are matched too.
func (h *Handler) Plan(c echo.Context) error {
	var p raceIDParam
	if err := bindValid(c, &p); err != nil {
		return err
	}

	race, err := h.store.RaceDetail(c.Request().Context(), p.ID)
	if err != nil {
		return storeError(err, "race")
	}

	names := make(map[int]string, len(race.Entries))
	for _, e := range race.Entries {
		if e.Horse != nil {
			names[e.HorseNumber] = e.Horse.Name
		}
	}
	ranked := stats.Rank(predictions(race.Predicts))
	for i := range ranked {
		ranked[i].HorseName = unknownName
		if n, ok := names[ranked[i].HorseNumber]; ok {
			ranked[i].HorseName = n
		}
	}

	out := planJSON{Plan: stats.BuildPlan(ranked, h.opts.Plan)}
	if len(race.Payouts) > 0 {
		out.Results = stats.Match(out.Plan.Bets(), report.Payouts(race.Payouts))
		s := stats.Calculate(out.Results)
		out.Statistics = &s
	}

	return c.JSON(http.StatusOK, out)
}
