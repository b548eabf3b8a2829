// Package logger provides the structured, levelled logger for storerate,
// built on log/slog.
//
// Every request gets a child logger pre-tagged with its request_id (wired by
// the Logger middleware), so handler and service log lines are correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("rating created", "store_id", storeID, "user_id", userID)
//	// → time=... level=INFO msg="rating created" request_id=a1b2c3d4 ...
//
// When LOG_MONGO_URI is set, records are additionally shipped to MongoDB by
// an asynchronous handler that never blocks the request path.
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/sarthakjain/storerate/config"
)

var L *slog.Logger

// mongoSink holds the active Mongo handler so Close can flush it on shutdown.
var mongoSink *MongoHandler

func init() {
	var handler slog.Handler

	if config.IsProduction() {
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	} else {
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	if uri := config.LogMongoURI(); uri != "" {
		mh, err := NewMongoHandler(uri, "storerate", "logs")
		if err != nil {
			slog.New(handler).Warn("mongo log sink unavailable", "error", err)
		} else {
			mongoSink = mh
			handler = Tee(handler, mh)
		}
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// Close flushes and disconnects the Mongo log sink, if one is active.
func Close() {
	if mongoSink != nil {
		mongoSink.Close()
	}
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger injected by the Logger middleware,
// already tagged with the request_id. Falls back to the base logger when
// called outside a request.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
