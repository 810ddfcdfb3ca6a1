// Package errorlog writes best-effort diagnostic records for faults on the
// request path. Nothing here ever returns an error to the caller.
package errorlog

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eventpill-api/internal/domain"
	"github.com/eventpill-api/internal/pkg/id"
)

// Writer persists a single record. Implementations must not retain rec.
type Writer interface {
	Write(ctx context.Context, rec *domain.ErrorRecord) error
}

// Logger fans faults out to slog and to a durable Writer.
type Logger struct {
	w         Writer
	timeout   time.Duration
	retention time.Duration
	now       func() time.Time
}

type Options struct {
	// Timeout bounds each Write. Zero means no bound beyond the caller's context.
	Timeout time.Duration
	// Retention sets ExpiresAt on each record. Zero keeps records forever.
	Retention time.Duration
}

// New returns a Logger. A nil Writer logs through slog only.
func New(w Writer, opts Options) *Logger {
	return &Logger{w: w, timeout: opts.Timeout, retention: opts.Retention, now: time.Now}
}

// Log records err under endpoint along with the calling frame.
func (l *Logger) Log(ctx context.Context, endpoint string, err error) {
	if err == nil {
		return
	}
	l.write(ctx, endpoint, err.Error(), callerFrame(2))
}

// LogPanic records a recovered panic value and the goroutine stack at the point of recovery.
func (l *Logger) LogPanic(ctx context.Context, endpoint string, v any, stack []byte) {
	l.write(ctx, endpoint, fmt.Sprintf("panic: %v", v), string(stack))
}

func (l *Logger) write(ctx context.Context, endpoint, msg, stack string) {
	now := l.now().UTC()
	rec := &domain.ErrorRecord{
		ErrorID:   id.New(),
		Timestamp: now,
		Endpoint:  endpoint,
		Message:   msg,
		Stack:     stack,
		RequestID: chimiddleware.GetReqID(ctx),
	}
	if l.retention > 0 {
		rec.ExpiresAt = now.Add(l.retention).Unix()
	}
	slog.ErrorContext(ctx, "request fault", "endpoint", endpoint, "error_id", rec.ErrorID, "request_id", rec.RequestID, "err", msg)

	if l.w == nil {
		return
	}
	// The record must land even if the client has already gone away.
	wctx := context.WithoutCancel(ctx)
	if l.timeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(wctx, l.timeout)
		defer cancel()
	}
	if err := l.w.Write(wctx, rec); err != nil {
		slog.WarnContext(ctx, "failed to write error record", "endpoint", endpoint, "error_id", rec.ErrorID, "err", err)
	}
}

func callerFrame(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fmt.Sprintf("%s\n\t%s:%d", fn.Name(), file, line)
	}
	return fmt.Sprintf("%s:%d", file, line)
}
