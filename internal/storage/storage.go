// Package storage defines persistence interfaces for operational telemetry.
// Chain state is never cached here; only the client's own flow events are
// recorded.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// TelemetryEvent is one recorded flow transition or outcome.
type TelemetryEvent struct {
	Timestamp time.Time
	Flow      string // flow name, e.g. "register_player"
	State     string // flow state reached, e.g. "submitted", "done", "failed"
	Actor     string // acting account address
	Code      string // domain error code, empty on success
	Message   string
}

// TelemetryStore persists operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
	ListTelemetryEvents(ctx context.Context, limit int) ([]TelemetryEvent, error)
}
