package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/keibaapi/report"
)

type statisticsQuery struct {
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// Statistics returns hit and return rates of the recommended bets for
// every race in the requested period (default: the last StatsDefaultDays).
func (h *Handler) Statistics(c echo.Context) error {
	var q statisticsQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}

	period, err := report.ParsePeriod(q.StartDate, q.EndDate, h.opts.Now(), h.opts.StatsDefaultDays)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rep, err := h.reporter.Build(c.Request().Context(), period)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rep)
}
