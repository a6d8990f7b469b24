package logger

import (
	"io"
	"os"

	"github.com/mgr-punith/password-vault/internal/app/server/config"

	"golang.org/x/exp/slog"
)

// New создает логгер для окружения: local - цветной вывод с debug, dev - JSON
// с debug, остальные - JSON с info. level (debug, info, warn, error) переопределяет
// уровень окружения, пустая или неизвестная строка оставляет его.
func New(env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: envLevel(env)}
	if l, ok := parseLevel(level); ok {
		opts.Level = l
	}

	if env == config.EnvLocal {
		return slog.New(PrettyHandlerOptions{SlogOpts: opts}.NewPrettyHandler(os.Stdout))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func envLevel(env string) slog.Level {
	switch env {
	case config.EnvLocal, config.EnvDev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func parseLevel(s string) (slog.Level, bool) {
	if s == "" {
		return 0, false
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, false
	}
	return l, true
}

// NewCLI логгер для консольного клиента: цветной вывод в out, чтобы не
// смешиваться с результатами команд. Без debug выводятся только Warn и выше.
func NewCLI(out io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}

	return slog.New(opts.NewPrettyHandler(out))
}
