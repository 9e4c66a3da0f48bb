package service

import (
	"regexp"

	apperrors "campusai/internal/errors"
	"campusai/internal/model"
)

// rollNoPattern is two digits, three uppercase letters, five digits.
var rollNoPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{3}[0-9]{5}$`)

// RollNoValidator validates roll numbers against a role.
type RollNoValidator struct{}

// NewRollNoValidator creates a new roll number validator.
func NewRollNoValidator() *RollNoValidator {
	return &RollNoValidator{}
}

// Validate checks rollNo for role. Only the student role has a format;
// every other role is accepted as is.
func (v *RollNoValidator) Validate(role, rollNo string) error {
	if role != model.DefaultRole {
		return nil
	}
	if !rollNoPattern.MatchString(rollNo) {
		return apperrors.ErrInvalidRollNo
	}
	return nil
}
