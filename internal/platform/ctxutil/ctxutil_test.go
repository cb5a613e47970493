// Copyright (c) 2026 Residents Book. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abhay4510/residents-book/internal/platform/ctxutil"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_LoggerFallback verifies that a caller-supplied fallback is used
only when the context carries no logger.
*/
func TestContext_LoggerFallback(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(os.Stdout, nil))
	scoped := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	assert.Same(t, fallback, ctxutil.GetLoggerOr(context.Background(), fallback))

	ctx := ctxutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, ctxutil.GetLoggerOr(ctx, fallback))
}

/*
TestContext_SessionID verifies that the browser session ID travels in context.
*/
func TestContext_SessionID(t *testing.T) {
	ctx := context.Background()

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetSessionID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithSessionID(ctx, "session-123")
	assert.Equal(t, "session-123", ctxutil.GetSessionID(ctx))
}
