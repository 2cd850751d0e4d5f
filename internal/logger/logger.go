// Package logger arma el logger zerolog de la aplicación y sus adaptadores
// para chi (logs por request) y pgx (logs de SQL).
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "brewery-api"

// New crea el logger base. En env "local" escribe en consola legible; en el resto, JSON.
func New(level, env string) (zerolog.Logger, error) {
	return newWithWriter(level, env, os.Stdout)
}

func newWithWriter(level, env string, out io.Writer) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), err
	}
	if parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	writer := out
	if env == "local" {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(writer).
		Level(parsed).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("env", env).
		Logger(), nil
}
