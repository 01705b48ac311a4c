package classgroup

import "errors"

var (
	ErrClassGroupNotFound = errors.New("class group not found")
	ErrInvalidAgeRange    = errors.New("minimum age must not exceed maximum age")
)
