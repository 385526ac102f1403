package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so -c/-config and -env-file are left to their
// own loaders. Panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-d", "-m", "-k", "-model", "-t", "-q", "-s", "-r", "-l", "-log-format",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "SQLite database file")
	fs.BoolVar(&cfg.InMemory, "m", cfg.InMemory, "keep records in memory only")
	fs.StringVar(&cfg.GeminiAPIKey, "k", cfg.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&cfg.GeminiModel, "model", cfg.GeminiModel, "Gemini model name")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "model request timeout (in seconds)")
	fs.IntVar(&cfg.QuizQuestions, "q", cfg.QuizQuestions, "questions per quiz")
	fs.IntVar(&cfg.QuizSecondsPerQuestion, "s", cfg.QuizSecondsPerQuestion, "quiz seconds per question")
	fs.IntVar(&cfg.HistoryRetention, "r", cfg.HistoryRetention, "quiz attempts kept per user")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text or json)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only overrides when given, so finer env or JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
