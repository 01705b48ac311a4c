package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrFamilyNotFound = errors.New("family not found")
)
