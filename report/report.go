// Package report builds betting statistics for a period from stored races.
package report

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/padraicbc/keibaapi/metrics"
	"github.com/padraicbc/keibaapi/models"
	"github.com/padraicbc/keibaapi/stats"
)

// RaceStatistics is the statistics of a single race in a report.
type RaceStatistics struct {
	RaceID     int                 `json:"raceId"`
	RaceTime   *time.Time          `json:"raceTime"`
	Track      string              `json:"track"`
	RaceName   string              `json:"raceName"`
	Statistics stats.BetStatistics `json:"statistics"`
}

// Report is the statistics of every race with recommended bets in a period.
type Report struct {
	Period            Period              `json:"period"`
	TotalRaces        int                 `json:"totalRaces"`
	OverallStatistics stats.BetStatistics `json:"overallStatistics"`
	RaceStatistics    []RaceStatistics    `json:"raceStatistics"`
}

// Source loads races with their recommended bets and payouts.
type Source interface {
	RacesWithBets(ctx context.Context, from, to time.Time) ([]models.Race, error)
}

// Reporter builds reports and caches them per period.
type Reporter struct {
	src   Source
	cache *cache.Cache
	log   *zap.Logger
}

// New returns a Reporter. A zero ttl disables caching.
func New(src Source, ttl time.Duration, log *zap.Logger) *Reporter {
	r := &Reporter{src: src, log: log}
	if ttl > 0 {
		r.cache = cache.New(ttl, 2*ttl)
	}
	return r
}

// Build returns the report for p. Cached reports are shared and must not
// be modified.
func (r *Reporter) Build(ctx context.Context, p Period) (*Report, error) {
	key := p.key()
	if r.cache != nil {
		if v, ok := r.cache.Get(key); ok {
			metrics.StatisticsCacheHits.Inc()
			return v.(*Report), nil
		}
		metrics.StatisticsCacheMisses.Inc()
	}

	start := time.Now()
	races, err := r.src.RacesWithBets(ctx, p.StartDate, p.EndDate)
	if err != nil {
		return nil, fmt.Errorf("load races: %w", err)
	}

	inputs := make([]stats.RaceBets, len(races))
	for i := range races {
		inputs[i] = RaceBets(&races[i])
	}
	perRace := stats.CalculateRaces(inputs)

	rep := &Report{
		Period:            p,
		TotalRaces:        len(races),
		OverallStatistics: stats.Aggregate(perRace),
		RaceStatistics:    make([]RaceStatistics, len(races)),
	}
	for i, race := range races {
		rep.RaceStatistics[i] = RaceStatistics{
			RaceID:     race.ID,
			RaceTime:   race.RaceTime,
			Track:      race.Track,
			RaceName:   race.Name,
			Statistics: perRace[i],
		}
	}

	for _, bt := range rep.OverallStatistics.BetTypeStats {
		metrics.ObserveBets(bt.BetType, bt.HitBets, bt.TotalBets)
	}
	metrics.RacesEvaluated.Add(float64(len(races)))
	elapsed := time.Since(start)
	metrics.StatisticsBuildDuration.Observe(elapsed.Seconds())

	r.log.Debug("statistics built",
		zap.Time("start", p.StartDate),
		zap.Time("end", p.EndDate),
		zap.Int("races", rep.TotalRaces),
		zap.Int("bets", rep.OverallStatistics.TotalBets),
		zap.Duration("took", elapsed),
	)

	if r.cache != nil {
		r.cache.SetDefault(key, rep)
	}
	return rep, nil
}

// Flush drops every cached report.
func (r *Reporter) Flush() {
	if r.cache != nil {
		r.cache.Flush()
	}
}

// RaceBets converts a race's stored bets and payouts into matcher input.
func RaceBets(race *models.Race) stats.RaceBets {
	return stats.RaceBets{
		Bets:    Bets(race.RecommendedBets),
		Payouts: Payouts(race.Payouts),
	}
}

// Bets converts stored recommended bets.
func Bets(rbs []*models.RecommendedBet) []stats.Bet {
	out := make([]stats.Bet, len(rbs))
	for i, b := range rbs {
		out[i] = stats.Bet{ID: b.ID, BetType: b.BetType, Numbers: b.Numbers, Stake: b.Bet}
	}
	return out
}

// Payouts converts stored payouts.
func Payouts(pos []*models.Payout) []stats.Payout {
	out := make([]stats.Payout, len(pos))
	for i, p := range pos {
		out[i] = stats.Payout{ID: p.ID, BetType: p.BetType, Numbers: p.Numbers, Amount: p.Payout}
	}
	return out
}
