// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required).
	JWTSecret  string
	AdminUsers []string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Statistics and betting plans.
	StatsDefaultDays int
	StatsCacheTTL    time.Duration
	PlanPlaceTiers   []int64
	PlanUnitStake    int64

	// MySQL – prediction pipeline database, used only by cmd/import.
	MySQLDSN string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()

	cfg, err := FromViper(v)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromViper applies defaults to v and builds a validated Config from it.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("DB_USER", "keiba")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "keiba")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "keiba.app,www.keiba.app")
	v.SetDefault("ADMIN_USERS", "admin")
	v.SetDefault("DEBUG", false)
	v.SetDefault("STATS_DEFAULT_DAYS", 30)
	v.SetDefault("STATS_CACHE_TTL", "5m")
	v.SetDefault("PLAN_PLACE_TIERS", "400,300,200,100")
	v.SetDefault("PLAN_UNIT_STAKE", 100)

	tiers, err := parseStakes(v.GetString("PLAN_PLACE_TIERS"))
	if err != nil {
		return nil, fmt.Errorf("PLAN_PLACE_TIERS: %w", err)
	}

	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		DBUser:           v.GetString("DB_USER"),
		DBPass:           v.GetString("DB_PASS"),
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBName:           v.GetString("DB_NAME"),
		DBSSLMode:        v.GetString("DB_SSLMODE"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AdminUsers:       splitTrimmed(v.GetString("ADMIN_USERS")),
		Debug:            v.GetBool("DEBUG"),
		Port:             v.GetString("PORT"),
		TLSDomains:       splitTrimmed(v.GetString("TLS_DOMAINS")),
		StatsDefaultDays: v.GetInt("STATS_DEFAULT_DAYS"),
		StatsCacheTTL:    v.GetDuration("STATS_CACHE_TTL"),
		PlanPlaceTiers:   tiers,
		PlanUnitStake:    v.GetInt64("PLAN_UNIT_STAKE"),
		MySQLDSN:         v.GetString("MYSQL_DSN"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// IsAdmin reports whether username is listed in ADMIN_USERS (case-insensitive).
func (c *Config) IsAdmin(username string) bool {
	u := strings.ToLower(strings.TrimSpace(username))
	for _, admin := range c.AdminUsers {
		if u == strings.ToLower(admin) {
			return true
		}
	}
	return false
}

func (c *Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" && c.DBPass == "" {
		errs = append(errs, errors.New("DATABASE_URL or DB_PASS must be set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.StatsDefaultDays <= 0 {
		errs = append(errs, errors.New("STATS_DEFAULT_DAYS must be positive"))
	}
	if c.StatsCacheTTL < 0 {
		errs = append(errs, errors.New("STATS_CACHE_TTL must not be negative"))
	}
	if len(c.PlanPlaceTiers) == 0 {
		errs = append(errs, errors.New("PLAN_PLACE_TIERS must list at least one stake"))
	}
	if c.PlanUnitStake <= 0 {
		errs = append(errs, errors.New("PLAN_UNIT_STAKE must be positive"))
	}
	return errors.Join(errs...)
}

func parseStakes(s string) ([]int64, error) {
	parts := splitTrimmed(s)
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid stake %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
