// Copyright (c) 2026 Residents Book. All rights reserved.

package web

import (
	"fmt"

	"github.com/Abhay4510/residents-book/internal/directory"
	"github.com/Abhay4510/residents-book/internal/notify"
	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/platform/constants"
	"github.com/Abhay4510/residents-book/internal/resident"
	"github.com/Abhay4510/residents-book/pkg/initials"
	"github.com/Abhay4510/residents-book/pkg/pagination"
	"github.com/Abhay4510/residents-book/pkg/slice"
)

// joinedLayout renders the detail overlay's membership date.
const joinedLayout = "January 2, 2006"

// # Page

// PageData is the root value of the "page" template.
type PageData struct {
	List            ListView
	Detail          *DetailView
	Form            *FormView
	Toasts          []notify.Toast
	ToastDurationMS int64
}

// # Resident Card

// CardView is one resident card of the grid.
type CardView struct {
	ID        string
	Name      string
	Title     string
	ImageURL  string
	Initial   string
	LinkedIn  string
	Twitter   string
	DetailURL string
}

// HasSocialLinks reports whether the card shows a social links row.
func (c CardView) HasSocialLinks() bool {
	return c.LinkedIn != "" || c.Twitter != ""
}

func newCardView(r resident.Resident, page int) CardView {
	return CardView{
		ID:        r.ID,
		Name:      r.FullName(),
		Title:     r.Title,
		ImageURL:  r.ProfileImage,
		Initial:   initials.Of(r.FirstName),
		LinkedIn:  r.LinkedIn,
		Twitter:   r.Twitter,
		DetailURL: fmt.Sprintf("/residents/%s?page=%d", r.ID, page),
	}
}

// # Resident List

// PageLink is one numbered pagination control.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// ListView is the directory grid with its pagination state.
type ListView struct {
	Cards     []CardView
	Window    pagination.Window
	Loading   bool
	LoadError string
	Pages     []PageLink
	PrevURL   string
	NextURL   string
}

// Empty reports whether the "No residents yet" state applies.
func (l ListView) Empty() bool {
	return !l.Loading && l.LoadError == "" && l.Window.Total == 0
}

// RangeStart is the 1-based index of the first visible resident.
func (l ListView) RangeStart() int {
	return l.Window.Start + 1
}

// RangeEnd is the 1-based index of the last visible resident.
func (l ListView) RangeEnd() int {
	return l.Window.End
}

func pageURL(page int) string {
	return fmt.Sprintf("/?page=%d#residents", page)
}

func newListView(snapshot directory.Snapshot, page int) ListView {
	window := pagination.NewWindow(len(snapshot.Residents), page, constants.ResidentsPerPage)
	visible := pagination.Slice(snapshot.Residents, window)

	view := ListView{
		Cards: slice.Map(visible, func(r resident.Resident) CardView {
			return newCardView(r, window.Page)
		}),
		Window: window,
	}

	if window.Total == 0 {
		switch {
		case snapshot.IsLoading && !snapshot.Loaded:
			view.Loading = true
		case snapshot.LoadErr != nil:
			view.LoadError = apperr.UserMessage(snapshot.LoadErr, msgFallback)
		}
	}

	if !window.ShowControls() {
		return view
	}

	view.Pages = slice.Map(window.Pages(), func(number int) PageLink {
		return PageLink{Number: number, URL: pageURL(number), Current: number == window.Page}
	})
	if window.HasPrev() {
		view.PrevURL = pageURL(window.Page - 1)
	}
	if window.HasNext() {
		view.NextURL = pageURL(window.Page + 1)
	}

	return view
}

// # Detail Overlay

// DetailView is the profile shown in the detail overlay.
type DetailView struct {
	CardView
	Joined   string
	CloseURL string
}

func newDetailView(r resident.Resident, page int) *DetailView {
	view := &DetailView{
		CardView: newCardView(r, page),
		CloseURL: pageURL(page),
	}
	if !r.CreatedAt.IsZero() {
		view.Joined = r.CreatedAt.Format(joinedLayout)
	}
	return view
}

// # Creation Overlay

// FormView is the creation form with its current values and field errors.
type FormView struct {
	FirstName string
	LastName  string
	Title     string
	LinkedIn  string
	Twitter   string
	Errors    map[string]string
	Initial   string
	Locked    bool
}

func newFormView(input resident.CreateInput, errors map[string]string, locked bool) *FormView {
	if errors == nil {
		errors = map[string]string{}
	}
	return &FormView{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Title:     input.Title,
		LinkedIn:  input.LinkedIn,
		Twitter:   input.Twitter,
		Errors:    errors,
		Initial:   initials.Of(input.FirstName),
		Locked:    locked,
	}
}
