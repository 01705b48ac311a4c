package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse(dateLayout, value)
}

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parsePeriod reads the data_inicio/data_fim query pair. When absent the
// period defaults to the current month so far: first day of the month
// through today.
func parsePeriod(query url.Values, now time.Time) (time.Time, time.Time, error) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if value := strings.TrimSpace(query.Get("data_inicio")); value != "" {
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid data_inicio")
		}
		from = parsed
	}
	if value := strings.TrimSpace(query.Get("data_fim")); value != "" {
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid data_fim")
		}
		to = parsed
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("data_inicio must not be after data_fim")
	}
	return from, to, nil
}

func parseBoolParam(value string) (*bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
