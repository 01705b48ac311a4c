package basket

import "errors"

var (
	ErrDeliveryNotFound = errors.New("basket delivery not found")
	ErrFamilyNotFound   = errors.New("family not found")
	ErrDuplicateDate    = errors.New("delivery already recorded for this family and date")
	ErrFamilyRequired   = errors.New("family_id is required")
	ErrDateRequired     = errors.New("delivery_date is required")
	ErrEmptyBatch       = errors.New("batch must contain at least one entry")
)
