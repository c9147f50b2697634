// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"time"
)

// StreamCategory identifies a kerbside waste stream tracked for an address.
type StreamCategory string

// Stream category constants. The slugs are stable and feed into reminder
// identifiers, so they must never change once released.
const (
	StreamHouseholdWaste StreamCategory = "household-waste"
	StreamMixedRecycling StreamCategory = "mixed-recycling"
	StreamOrganics       StreamCategory = "organics"
)

// DisplayName returns the human-readable name used by the council data source.
func (c StreamCategory) DisplayName() string {
	switch c {
	case StreamHouseholdWaste:
		return "Household Waste"
	case StreamMixedRecycling:
		return "Mixed Recycling"
	case StreamOrganics:
		return "FOGO"
	default:
		return string(c)
	}
}

// Emoji returns the bin marker shown in reminder messages.
func (c StreamCategory) Emoji() string {
	switch c {
	case StreamHouseholdWaste:
		return "🔴"
	case StreamMixedRecycling:
		return "🟡"
	case StreamOrganics:
		return "🟢"
	default:
		return "🗑️"
	}
}

// Valid reports whether the category is one of the known streams.
func (c StreamCategory) Valid() bool {
	switch c {
	case StreamHouseholdWaste, StreamMixedRecycling, StreamOrganics:
		return true
	}
	return false
}

// Collection cadences in days.
const (
	CadenceWeekly      = 7
	CadenceFortnightly = 14
)

// CollectionStream represents one waste stream tracked for an address: the
// next known collection date and how often the stream repeats. Streams are
// constructed fresh from each fetched record and never mutated.
type CollectionStream struct {
	AnchorDate  time.Time
	Category    StreamCategory
	CadenceDays int
}

// NewCollectionStream validates and constructs a stream. The anchor is
// normalized to a calendar day; time-of-day is irrelevant to recurrence math.
func NewCollectionStream(category StreamCategory, anchor time.Time, cadenceDays int) (CollectionStream, error) {
	if !category.Valid() {
		return CollectionStream{}, fmt.Errorf("unknown stream category: %q", category)
	}
	if cadenceDays != CadenceWeekly && cadenceDays != CadenceFortnightly {
		return CollectionStream{}, fmt.Errorf("invalid cadence %d days: must be %d or %d", cadenceDays, CadenceWeekly, CadenceFortnightly)
	}
	return CollectionStream{
		Category:    category,
		AnchorDate:  Day(anchor),
		CadenceDays: cadenceDays,
	}, nil
}

// Day truncates a timestamp to UTC midnight. All occurrence arithmetic works
// on these normalized calendar days.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
