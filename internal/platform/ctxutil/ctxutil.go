// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/socialbros/internal/platform/ctxkey"
	"github.com/taibuivan/socialbros/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// AccessLog collects facts learned deep in the handler chain that the
// access logger reports once the response is written.
type AccessLog struct {
	UserID string
}

// WithAccessLog attaches an empty access-log record and returns it.
func WithAccessLog(ctx context.Context) (context.Context, *AccessLog) {
	record := &AccessLog{}
	return context.WithValue(ctx, ctxkey.KeyAccessLog, record), record
}

// # Identity & Access

// WithIdentity returns a new context carrying the authenticated identity.
// The subject is also recorded on the request's access log when present.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	if record, ok := ctx.Value(ctxkey.KeyAccessLog).(*AccessLog); ok && identity != nil {
		record.UserID = identity.Subject
	}
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity retrieves the [*sec.Identity] from the [context.Context].
// It returns nil for anonymous requests.
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, ok := ctx.Value(ctxkey.KeyIdentity).(*sec.Identity)
	if !ok {
		return nil
	}
	return identity
}
