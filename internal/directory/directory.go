// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package directory holds the client-side state of the resident roster.

It contains three collaborators, all built on an injected [API]:

  - [Store]: the full in-memory collection, loaded once and grown on creation.
  - [Detail]: one on-demand lookup of a single resident for the detail overlay.
  - [Form]: the creation form, its local checks, and its submission lock.

Nothing in this package renders HTML; the web layer reads snapshots and
drives the state machines in response to requests.
*/
package directory

//go:generate mockgen -source=directory.go -destination=mocks/mocks.go -package=mocks API

import (
	"context"

	"github.com/Abhay4510/residents-book/internal/resident"
)

// API is the subset of the Residents API the directory depends on.
// [*resident.Client] satisfies it.
type API interface {
	List(ctx context.Context, page, limit int) (*resident.ListResult, error)
	Get(ctx context.Context, id string) (*resident.Resident, error)
	Create(ctx context.Context, input resident.CreateInput) (*resident.Resident, error)
}
