package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/examoracle/internal/flagx"
	"github.com/dmitrijs2005/examoracle/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from an explicit zero, so a JSON file only
// overrides the keys it mentions.
type JsonConfig struct {
	StoreDSN               *string         `json:"store_dsn"`
	InMemory               *bool           `json:"in_memory"`
	GeminiAPIKey           *string         `json:"gemini_api_key"`
	GeminiModel            *string         `json:"gemini_model"`
	GeminiBaseURL          *string         `json:"gemini_base_url"`
	RequestTimeout         *timex.Duration `json:"request_timeout"`
	SessionSecret          *string         `json:"session_secret"`
	SessionTTL             *timex.Duration `json:"session_ttl"`
	HistoryRetention       *int            `json:"history_retention"`
	QuizQuestions          *int            `json:"quiz_questions"`
	QuizSecondsPerQuestion *int            `json:"quiz_seconds_per_question"`
	LogLevel               *string         `json:"log_level"`
	LogFormat              *string         `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing happens. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.StoreDSN, jc.StoreDSN)
	setIf(&cfg.InMemory, jc.InMemory)
	setIf(&cfg.GeminiAPIKey, jc.GeminiAPIKey)
	setIf(&cfg.GeminiModel, jc.GeminiModel)
	setIf(&cfg.GeminiBaseURL, jc.GeminiBaseURL)
	setIf(&cfg.SessionSecret, jc.SessionSecret)
	setIf(&cfg.HistoryRetention, jc.HistoryRetention)
	setIf(&cfg.QuizQuestions, jc.QuizQuestions)
	setIf(&cfg.QuizSecondsPerQuestion, jc.QuizSecondsPerQuestion)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
