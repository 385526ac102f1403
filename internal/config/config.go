package config

import (
	"time"

	"github.com/dmitrijs2005/examoracle/internal/gateway"
	"github.com/dmitrijs2005/examoracle/internal/services"
)

// Config holds runtime settings for the Exam Oracle CLI.
//
// An empty SessionSecret means the signing key is generated once and kept
// in the record store.
type Config struct {
	StoreDSN string
	InMemory bool

	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	RequestTimeout time.Duration

	SessionSecret string
	SessionTTL    time.Duration

	HistoryRetention       int
	QuizQuestions          int
	QuizSecondsPerQuestion int

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDSN = "oracle.db"
	c.InMemory = false
	c.GeminiModel = gateway.DefaultModel
	c.GeminiBaseURL = gateway.DefaultBaseURL
	c.RequestTimeout = gateway.DefaultTimeout
	c.SessionTTL = 30 * 24 * time.Hour
	c.HistoryRetention = services.DefaultHistoryRetention
	c.QuizQuestions = gateway.DefaultQuestions
	c.QuizSecondsPerQuestion = 30
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
