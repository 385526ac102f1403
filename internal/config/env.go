package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with environment variables. A dotenv file named
// with -env-file, or ./.env when it exists, is loaded first; variables that
// are already set in the process environment win over the file.
//
// Panics on an unreadable dotenv file or malformed numeric/duration values.
func parseEnv(cfg *Config) {
	file := flagx.EnvFileFlags()
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}
	if err := godotenv.Load(file); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv("ORACLE_STORE_DSN"); ok {
		cfg.StoreDSN = v
	}
	if v, ok := os.LookupEnv("ORACLE_IN_MEMORY"); ok {
		cfg.InMemory = mustBool(v)
	}
	if v, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
		cfg.GeminiAPIKey = v
	}
	if v, ok := os.LookupEnv("ORACLE_GEMINI_API_KEY"); ok {
		cfg.GeminiAPIKey = v
	}
	if v, ok := os.LookupEnv("ORACLE_GEMINI_MODEL"); ok {
		cfg.GeminiModel = v
	}
	if v, ok := os.LookupEnv("ORACLE_GEMINI_BASE_URL"); ok {
		cfg.GeminiBaseURL = v
	}
	if v, ok := os.LookupEnv("ORACLE_REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = mustDuration(v)
	}
	if v, ok := os.LookupEnv("ORACLE_SESSION_SECRET"); ok {
		cfg.SessionSecret = v
	}
	if v, ok := os.LookupEnv("ORACLE_SESSION_TTL"); ok {
		cfg.SessionTTL = mustDuration(v)
	}
	if v, ok := os.LookupEnv("ORACLE_HISTORY_RETENTION"); ok {
		cfg.HistoryRetention = mustInt(v)
	}
	if v, ok := os.LookupEnv("ORACLE_QUIZ_QUESTIONS"); ok {
		cfg.QuizQuestions = mustInt(v)
	}
	if v, ok := os.LookupEnv("ORACLE_QUIZ_SECONDS_PER_QUESTION"); ok {
		cfg.QuizSecondsPerQuestion = mustInt(v)
	}
	if v, ok := os.LookupEnv("ORACLE_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("ORACLE_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
}

func mustBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(err)
	}
	return b
}

func mustInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	return n
}

func mustDuration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
