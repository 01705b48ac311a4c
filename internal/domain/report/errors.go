package report

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidType    = errors.New("invalid report type")
	ErrInvalidPeriod  = errors.New("period start must not be after period end")
)
