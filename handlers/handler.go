package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/keibaapi/report"
	"github.com/padraicbc/keibaapi/repository"
	"github.com/padraicbc/keibaapi/stats"
)

// Options configures a Handler.
type Options struct {
	JWTKey           []byte
	StatsDefaultDays int
	Plan             stats.PlanConfig
	// IsAdmin decides who may call PasswordHash.
	IsAdmin func(username string) bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store    repository.Store
	reporter *report.Reporter
	opts     Options
}

// New creates a Handler reading from store and building statistics with reporter.
func New(store repository.Store, reporter *report.Reporter, opts Options) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IsAdmin == nil {
		opts.IsAdmin = func(string) bool { return false }
	}
	if len(opts.Plan.PlaceTiers) == 0 {
		opts.Plan = stats.DefaultPlanConfig()
	}
	if opts.StatsDefaultDays <= 0 {
		opts.StatsDefaultDays = 30
	}
	return &Handler{store: store, reporter: reporter, opts: opts}
}

// Health reports that the process is serving.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Validator adapts go-playground/validator to echo.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator for e.Validator.
func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// Validate runs struct tag validation and reports failures as 400s.
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// bindValid binds path and query params into dst and validates it.
func bindValid(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Validate(dst)
}

func storeError(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, what+" not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
