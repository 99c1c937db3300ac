package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Level is written as "severity" so hosted log
// collectors pick it up without a parser.
func New(appEnv string) zerolog.Logger {
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if appEnv == "development" {
		return logger.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	}
	return logger.Level(zerolog.InfoLevel)
}
