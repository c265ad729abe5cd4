package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/races/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return echo.NewHTTPError(http.StatusNotFound, "race not found")
		}
		return c.NoContent(http.StatusOK)
	})

	ok := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/races/:id", "200")
	missing := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/races/:id", "404")
	okBefore, missingBefore := testutil.ToFloat64(ok), testutil.ToFloat64(missing)

	for _, id := range []string{"1", "2", "404"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/races/"+id, nil))
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(ok))
	assert.Equal(t, missingBefore+1, testutil.ToFloat64(missing))
}

func TestObserveBets(t *testing.T) {
	hit := BetsMatched.WithLabelValues("ワイド", "hit")
	miss := BetsMatched.WithLabelValues("ワイド", "miss")
	hitBefore, missBefore := testutil.ToFloat64(hit), testutil.ToFloat64(miss)

	ObserveBets("ワイド", 2, 6)
	ObserveBets("ワイド", 0, 0)

	assert.Equal(t, hitBefore+2, testutil.ToFloat64(hit))
	assert.Equal(t, missBefore+4, testutil.ToFloat64(miss))
}

func TestHandlerExposesRegistry(t *testing.T) {
	StatisticsCacheHits.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "keiba_statistics_cache_hits_total"))
}

func TestBetCountersDescribeReportBuilds(t *testing.T) {
	assert.Contains(t, BetsMatched.WithLabelValues("複勝", "hit").Desc().String(), "per statistics report build")
	assert.Contains(t, RacesEvaluated.Desc().String(), "per statistics report build")
}
