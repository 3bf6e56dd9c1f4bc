package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the client logger. Level comes from IMMICH_LOG_LEVEL
// (default info). If IMMICH_LOG names a file, logs are appended there as
// JSON; otherwise output goes to stderr through the console writer.
func NewLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("IMMICH_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logFile := os.Getenv("IMMICH_LOG")
	if logFile != "" {
		dir := filepath.Dir(logFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			panic(err)
		}
		return zerolog.New(file).Level(level).With().Timestamp().Logger()
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

var GlobalLogger = NewLogger()
