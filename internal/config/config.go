package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hitoshi/raffle/internal/model"
)

// minSessionSecretLength はセッショントークン署名鍵の最小長（バイト）。
const minSessionSecretLength = 32

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// セッションの有効期間は30日固定で、設定では変更できない。
type Config struct {
	// Database
	DatabaseURL string

	// Session
	SessionSecret string

	// Rate Limit（1分あたりのリクエスト数）
	RateLimitGeneral int
	RateLimitLogin   int

	// Entry
	TicketMode model.TicketMode

	// Password
	BcryptCost int

	// Worker
	RevocationCleanupInterval time.Duration
	WorkerMetricsPort         string

	// Server
	ServerPort string
	BaseURL    string

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string

	// Logging
	LogLevel string
}

// rawEnv は環境変数の生の値を保持する。
type rawEnv struct {
	DatabaseURL               string        `env:"DATABASE_URL,required,notEmpty"`
	SessionSecret             string        `env:"SESSION_SECRET,required,notEmpty"`
	RateLimitGeneral          int           `env:"RATE_LIMIT_GENERAL" envDefault:"120"`
	RateLimitLogin            int           `env:"RATE_LIMIT_LOGIN" envDefault:"10"`
	TicketMode                string        `env:"TICKET_MODE" envDefault:"random"`
	BcryptCost                int           `env:"BCRYPT_COST" envDefault:"12"`
	RevocationCleanupInterval time.Duration `env:"REVOCATION_CLEANUP_INTERVAL" envDefault:"1h"`
	WorkerMetricsPort         string        `env:"WORKER_METRICS_PORT" envDefault:"9091"`
	ServerPort                string        `env:"SERVER_PORT" envDefault:"8080"`
	BaseURL                   string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	CookieDomain              string        `env:"COOKIE_DOMAIN"`
	CORSAllowedOrigin         string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
	LogLevel                  string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合や値が不正な場合はエラーを返す。
func Load() (*Config, error) {
	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:               raw.DatabaseURL,
		SessionSecret:             raw.SessionSecret,
		RateLimitGeneral:          raw.RateLimitGeneral,
		RateLimitLogin:            raw.RateLimitLogin,
		TicketMode:                model.TicketMode(strings.ToLower(strings.TrimSpace(raw.TicketMode))),
		BcryptCost:                raw.BcryptCost,
		RevocationCleanupInterval: raw.RevocationCleanupInterval,
		WorkerMetricsPort:         raw.WorkerMetricsPort,
		ServerPort:                raw.ServerPort,
		BaseURL:                   raw.BaseURL,
		CookieSecure:              strings.HasPrefix(raw.BaseURL, "https://"),
		CookieDomain:              raw.CookieDomain,
		CORSAllowedOrigin:         raw.CORSAllowedOrigin,
		LogLevel:                  raw.LogLevel,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate は型変換だけでは検出できない値の不正をまとめて検出する。
func (c *Config) validate() error {
	var errs []error

	if len(c.SessionSecret) < minSessionSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLength))
	}
	switch c.TicketMode {
	case model.TicketModeRandom, model.TicketModeSequential:
	default:
		errs = append(errs, fmt.Errorf("TICKET_MODE must be %q or %q, got %q",
			model.TicketModeRandom, model.TicketModeSequential, c.TicketMode))
	}
	if c.RateLimitGeneral <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_GENERAL must be positive"))
	}
	if c.RateLimitLogin <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_LOGIN must be positive"))
	}
	if c.RevocationCleanupInterval <= 0 {
		errs = append(errs, errors.New("REVOCATION_CLEANUP_INTERVAL must be positive"))
	}

	return errors.Join(errs...)
}
