// Copyright (c) 2026 Residents Book. All rights reserved.

package resident

import (
	"github.com/Abhay4510/residents-book/internal/platform/apperr"
	"github.com/Abhay4510/residents-book/internal/platform/constants"
	"github.com/Abhay4510/residents-book/internal/platform/validate"
)

// User-facing messages of the local creation checks.
const (
	MsgFirstNameRequired = "First name is required"
	MsgLastNameRequired  = "Last name is required"
	MsgTitleRequired     = "Title/Role is required"
	MsgInvalidLinkedIn   = "Please enter a valid LinkedIn URL"
	MsgInvalidTwitter    = "Please enter a valid Twitter/X URL"
	MsgImageTooLarge     = "Image size should be less than 5MB"
)

// Validate runs every text-field rule of the creation form and returns all
// violations in field order. A nil result means the input may be submitted.
//
// The optional link checks are substring checks only.
func Validate(input CreateInput) []apperr.FieldError {
	v := &validate.Validator{}

	v.Required(FieldFirstName, input.FirstName, MsgFirstNameRequired).
		Required(FieldLastName, input.LastName, MsgLastNameRequired).
		Required(FieldTitle, input.Title, MsgTitleRequired).
		ContainsAny(FieldLinkedIn, input.LinkedIn, MsgInvalidLinkedIn, "linkedin.com").
		ContainsAny(FieldTwitter, input.Twitter, MsgInvalidTwitter, "twitter.com", "x.com")

	return v.Errors()
}

// CheckImage rejects a profile image larger than
// [constants.MaxProfileImageBytes]. A nil image passes.
func CheckImage(image *Image) error {
	v := &validate.Validator{}
	v.MaxBytes(FieldProfileImage, image.Size(), constants.MaxProfileImageBytes, MsgImageTooLarge)

	if err := v.Err(); err != nil {
		ae := apperr.As(err)
		ae.Message = MsgImageTooLarge
		return ae
	}
	return nil
}
