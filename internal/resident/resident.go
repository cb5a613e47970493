// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package resident defines the Resident record, the creation input, the local
creation checks, and the HTTP client of the upstream Residents API.

Residents are owned by the upstream service: this package never mutates a
record it received, it only reads, lists and submits new ones.
*/
package resident

import (
	"strings"
	"time"

	"github.com/Abhay4510/residents-book/pkg/pagination"
)

// Resident is a directory entry representing one community member.
type Resident struct {
	ID           string    `json:"_id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Title        string    `json:"title"`
	ProfileImage string    `json:"profileImage,omitempty"`
	LinkedIn     string    `json:"linkedIn,omitempty"`
	Twitter      string    `json:"twitter,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName joins the first and last name with a single space.
func (r Resident) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// HasSocialLinks reports whether at least one social profile is set.
func (r Resident) HasSocialLinks() bool {
	return r.LinkedIn != "" || r.Twitter != ""
}

// ListResult is one page of residents as returned by the upstream API.
type ListResult struct {
	Residents  []Resident      `json:"residents"`
	Pagination pagination.Meta `json:"pagination"`
}

// Image is a binary profile image attached to a creation form.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the image length in bytes.
func (i *Image) Size() int64 {
	if i == nil {
		return 0
	}
	return int64(len(i.Data))
}

// CreateInput is the fixed-shape creation form record.
//
// Optional text fields are empty when absent. ProfileImage is nil when no
// image is attached.
type CreateInput struct {
	FirstName    string
	LastName     string
	Title        string
	LinkedIn     string
	Twitter      string
	ProfileImage *Image
}

// Form field names shared by the multipart payload, the HTML form, and
// field-level errors.
const (
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldTitle        = "title"
	FieldLinkedIn     = "linkedIn"
	FieldTwitter      = "twitter"
	FieldProfileImage = "profileImage"
)
