package family

import "errors"

var (
	ErrFamilyNotFound   = errors.New("family not found")
	ErrGuardianNotFound = errors.New("guardian not found")
)
