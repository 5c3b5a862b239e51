// Package logger provides a structured, levelled logger built on log/slog.
//
// Every command run gets its own run ID. WithRun tags a logger with it and
// stores it in the context, so lines from the generator, the ingestor and
// the reporter can be correlated when they run as one pipeline:
//
//	ctx, log := logger.WithRun(ctx, "ingest")
//	log.Info("rows inserted", "table", "orders", "rows", 20)
//	// → time=... level=INFO msg="rows inserted" run_id=5f0c... command=ingest table=orders rows=20
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/shopdata/config"
)

var L *slog.Logger

func init() {
	Configure(config.AppEnv(), config.LogLevel(), os.Stderr)
}

// Configure replaces the base logger. Production environments log JSON,
// everything else logs human-readable text. level is a slog level name; an
// unknown name means warn. Logs never go to stdout, which is reserved for
// the report.
func Configure(env, level string, w io.Writer) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithRun creates a logger tagged with a fresh run_id and the command name
// and returns it together with a context that carries it.
func WithRun(ctx context.Context, command string) (context.Context, *slog.Logger) {
	log := L.With("run_id", uuid.NewString(), "command", command)
	return InjectLogger(ctx, log), log
}

// WithCtx returns the logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}
