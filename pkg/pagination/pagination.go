// Copyright (c) 2026 Residents Book. All rights reserved.

// Package pagination provides shared types and helpers for page-based navigation.
//
// # Overview
//
// It covers both sides of the directory: how the stub API parses "page" and
// "limit" and reports its metadata, and how the web front end slices the
// in-memory collection into fixed-size windows.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 1000
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the slice offset derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in Residents API list responses.
type Meta struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalResidents int  `json:"totalResidents"`
	HasNextPage    bool `json:"hasNextPage"`
	HasPrevPage    bool `json:"hasPrevPage"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalResidents: total,
		HasNextPage:    page < totalPages,
		HasPrevPage:    page > 1,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}

// # Client-side Windows

// Window is the contiguous slice of a collection shown on one page.
//
// Start and End are half-open bounds into the collection, already clamped.
type Window struct {
	Page       int
	Size       int
	Total      int
	TotalPages int
	Start      int
	End        int
}

// NewWindow computes the window for a 1-based page over total items.
//
// # Clamping
//
// A page below 1 becomes 1 and a page past the last becomes the last, so a
// stale page index never produces an empty window while items exist. With
// zero items the window is empty and TotalPages is 0.
func NewWindow(total, page, size int) Window {
	if size < 1 {
		size = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return Window{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// Empty reports whether the window has no items to show.
func (w Window) Empty() bool {
	return w.Start >= w.End
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool {
	return w.Page > 1
}

// HasNext reports whether a following page exists.
func (w Window) HasNext() bool {
	return w.Page < w.TotalPages
}

// ShowControls reports whether page navigation is worth rendering.
func (w Window) ShowControls() bool {
	return w.TotalPages > 1
}

// Pages lists every page number from 1 to TotalPages.
func (w Window) Pages() []int {
	pages := make([]int, w.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Slice returns the window's items from a collection of the window's total length.
func Slice[T any](items []T, w Window) []T {
	start := min(w.Start, len(items))
	end := min(w.End, len(items))
	return items[start:end]
}
