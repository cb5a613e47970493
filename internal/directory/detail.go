// Copyright (c) 2026 Residents Book. All rights reserved.

package directory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/platform/ctxutil"
	"github.com/Abhay4510/residents-book/internal/resident"
)

// DetailState is the lifecycle of one detail lookup.
type DetailState int

const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailLoaded
	DetailFailed
)

// String returns the lower-case state name.
func (s DetailState) String() string {
	switch s {
	case DetailIdle:
		return "idle"
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Detail fetches a single resident on demand for the detail overlay.
//
// Each invocation fetches again: nothing is cached between [Detail.Open]
// calls, and the lookup never writes into the [Store]. A Detail is owned by
// one request and is not safe for concurrent use.
type Detail struct {
	api      API
	state    DetailState
	resident *resident.Resident
	err      error
}

// NewDetail creates an idle lookup.
func NewDetail(api API) *Detail {
	return &Detail{api: api}
}

// Open moves to Loading, fetches id, and ends in Loaded or Failed.
func (d *Detail) Open(ctx context.Context, id string) (*resident.Resident, error) {
	d.state = DetailLoading
	d.resident = nil
	d.err = nil

	if strings.TrimSpace(id) == "" {
		return nil, d.fail(ctx, id, apperr.NotFound("Resident"))
	}

	found, err := d.api.Get(ctx, id)
	if err != nil {
		return nil, d.fail(ctx, id, err)
	}

	d.state = DetailLoaded
	d.resident = found
	return found, nil
}

// Close returns to Idle and discards the fetched record.
func (d *Detail) Close() {
	d.state = DetailIdle
	d.resident = nil
	d.err = nil
}

// State returns the current lifecycle state.
func (d *Detail) State() DetailState { return d.state }

// Resident returns the loaded record, or nil outside the Loaded state.
func (d *Detail) Resident() *resident.Resident { return d.resident }

// Err returns the failure of the last Open, if any.
func (d *Detail) Err() error { return d.err }

func (d *Detail) fail(ctx context.Context, id string, err error) error {
	d.state = DetailFailed
	d.err = err

	ctxutil.GetLogger(ctx).WarnContext(ctx, "resident_detail_failed",
		slog.String("resident_id", id),
		slog.Any("error", err),
	)
	return err
}
