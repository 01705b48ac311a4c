package attendance

import "errors"

var (
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrDuplicateDate      = errors.New("attendance already recorded for this member and date")
	ErrMemberRequired     = errors.New("member_id is required")
	ErrClassGroupRequired = errors.New("class_group_id is required")
	ErrDateRequired       = errors.New("date is required")
	ErrEmptyBatch         = errors.New("batch must contain at least one entry")
)
