package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. InitLogger must run before the first use;
// the zero value discards nothing but writes unformatted JSON to stderr.
var Log zerolog.Logger

// InitLogger configures the global logger. Development gets human-readable
// console output; anything else logs JSON.
func InitLogger(env string) {
	if env == "development" {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}).
			With().Timestamp().Logger()
		return
	}
	Log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
