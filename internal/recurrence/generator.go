// Package recurrence computes concrete collection dates from a stream's
// anchor date and cadence.
package recurrence

import (
	"fmt"
	"time"

	"github.com/greenloop/kerbside/internal/model"
)

// Occurrences returns every date of the form anchor + k*cadenceDays (k any
// integer) inside [windowStart, windowEnd], inclusive, in ascending order.
// The recurrence extends backward from the anchor as well as forward, so
// anchors inside or after the window still yield the occurrences before them.
func Occurrences(anchor time.Time, cadenceDays int, windowStart, windowEnd time.Time) ([]time.Time, error) {
	if cadenceDays <= 0 {
		return nil, fmt.Errorf("invalid cadence %d days: must be positive", cadenceDays)
	}

	start := model.Day(windowStart)
	end := model.Day(windowEnd)
	if start.After(end) {
		return nil, nil
	}

	// Walk back to the progression member on or before the window start,
	// then forward to the first member inside the window.
	current := model.Day(anchor)
	for current.After(start) {
		current = current.AddDate(0, 0, -cadenceDays)
	}
	for current.Before(start) {
		current = current.AddDate(0, 0, cadenceDays)
	}

	var dates []time.Time
	for !current.After(end) {
		dates = append(dates, current)
		current = current.AddDate(0, 0, cadenceDays)
	}
	return dates, nil
}

// StreamOccurrences returns the stream's collection dates inside the window.
func StreamOccurrences(stream model.CollectionStream, windowStart, windowEnd time.Time) ([]time.Time, error) {
	return Occurrences(stream.AnchorDate, stream.CadenceDays, windowStart, windowEnd)
}
