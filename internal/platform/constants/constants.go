// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate-limit bookkeeping, directory presentation
sizes, and cross-cutting keys that are shared between different layers of
the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: IP tracking TTLs.
  - Directory: Page size and upload limits.
  - Notifications: Toast lifetimes and Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "residents-book"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Multipart uploads of up to MaxProfileImageBytes must fit in it.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 20 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupLoadTimeout bounds the initial directory fetch.
	StartupLoadTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Directory

const (
	// ResidentsPerPage is the fixed pagination window size of the directory grid.
	ResidentsPerPage = 12

	// MaxProfileImageBytes is the largest accepted profile image (5 MiB).
	MaxProfileImageBytes = 5 * 1024 * 1024

	// MaxMultipartMemory caps the in-memory part of a parsed creation form.
	MaxMultipartMemory = 8 << 20

	// MaxCreateBodyBytes caps the whole creation request body. Larger images
	// still have to be read so they can be rejected with a notification.
	MaxCreateBodyBytes = 32 << 20
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Sessions & Notifications

const (
	// SessionCookieName identifies the browser session that owns queued toasts.
	SessionCookieName = "rb_session"

	// SessionCookieMaxAge is how long the session cookie is kept by the browser.
	SessionCookieMaxAge = 30 * 24 * time.Hour

	// ToastTTL is how long an undelivered toast is kept before it is dropped.
	ToastTTL = 2 * time.Minute

	// ToastDisplayDuration is how long a delivered toast stays on screen.
	ToastDisplayDuration = 4 * time.Second
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldSuccess = "success"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixToasts = "notify:toasts:"
)
