package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

type contextKey int

const (
	sessionIDKey contextKey = iota
	traceIDKey
)

// TraceIDLength is the number of random bytes in a trace ID (32 hex characters).
const TraceIDLength = 16

// fallbackSeq keeps fallback trace IDs unique within the process.
var fallbackSeq atomic.Uint64

// SetTraceID adds a new trace ID to the context. The ID correlates log lines
// with the error responses a browser sees.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, newTraceID(rand.Reader, time.Now))
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// SetSessionID stores the browser session ID in the context.
func SetSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID retrieves the browser session ID from the context.
// If none is set, it returns an empty string.
func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}

// newTraceID reads TraceIDLength bytes from src and hex-encodes them. When
// src fails or comes up short the ID is built from now and a process-wide
// sequence number instead, so it is still unique but not unpredictable.
func newTraceID(src io.Reader, now func() time.Time) string {
	b := make([]byte, TraceIDLength)
	if n, err := io.ReadFull(src, b); err != nil {
		slog.Error("failed to generate random trace ID, using time-based fallback",
			"error", err,
			"bytes_read", n,
			"bytes_requested", TraceIDLength)

		binary.BigEndian.PutUint64(b[:8], uint64(now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], fallbackSeq.Add(1))
	}
	return hex.EncodeToString(b)
}
