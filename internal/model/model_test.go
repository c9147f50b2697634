package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderIdentifier(t *testing.T) {
	date := time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC)

	id := ReminderIdentifier(StreamHouseholdWaste, date)
	assert.Equal(t, "collection_household-waste_2025-07-10", id)

	// Deterministic regardless of time-of-day.
	later := time.Date(2025, 7, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, id, ReminderIdentifier(StreamHouseholdWaste, later))

	assert.Equal(t, "collection_organics_2025-07-10", ReminderIdentifier(StreamOrganics, date))
}

func TestNewReminderEntry(t *testing.T) {
	collection := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	entry := NewReminderEntry(StreamMixedRecycling, collection, "12 Sturt St", TimeOfDay{Hour: 19, Minute: 30}, time.UTC)

	assert.Equal(t, "collection_mixed-recycling_2025-07-10", entry.Identifier)
	assert.Equal(t, time.Date(2025, 7, 9, 19, 30, 0, 0, time.UTC), entry.FireAt)
	assert.Equal(t, entry.FireAt.Add(24*time.Hour), entry.ExpiresAt)
	assert.Equal(t, collection, entry.CollectionDate)
	assert.Contains(t, entry.Body, "Mixed Recycling")
	assert.Contains(t, entry.Body, "Jul 10, 2025")
	assert.True(t, entry.InNamespace())
}

func TestNewReminderEntryFiresInUserZone(t *testing.T) {
	aest := time.FixedZone("AEST", 10*3600)
	collection := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	entry := NewReminderEntry(StreamHouseholdWaste, collection, "12 Sturt St", TimeOfDay{Hour: 18}, aest)

	// 18:00 the evening before, on the user's clock, not UTC's.
	want := time.Date(2025, 7, 9, 18, 0, 0, 0, aest)
	assert.True(t, entry.FireAt.Equal(want), "FireAt = %v, want %v", entry.FireAt, want)

	local := entry.FireAt.In(aest)
	assert.Equal(t, 18, local.Hour())
	assert.Equal(t, 9, local.Day())
	assert.Equal(t, entry.FireAt.Add(24*time.Hour), entry.ExpiresAt)
	assert.Equal(t, collection, entry.CollectionDate)
}

func TestReminderEntryExpired(t *testing.T) {
	entry := NewReminderEntry(StreamOrganics, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), "", DefaultReminderTime, time.UTC)

	assert.False(t, entry.Expired(entry.ExpiresAt))
	assert.False(t, entry.Expired(entry.FireAt))
	assert.True(t, entry.Expired(entry.ExpiresAt.Add(time.Second)))
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "default evening", input: "18:00", want: TimeOfDay{Hour: 18}},
		{name: "leading zero", input: "07:05", want: TimeOfDay{Hour: 7, Minute: 5}},
		{name: "end of day", input: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{name: "missing colon", input: "1800", wantErr: true},
		{name: "hour too large", input: "24:00", wantErr: true},
		{name: "minute too large", input: "18:60", wantErr: true},
		{name: "negative hour", input: "-1:00", wantErr: true},
		{name: "not numeric", input: "six:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCollectionStream(t *testing.T) {
	anchor := time.Date(2025, 7, 10, 16, 45, 0, 0, time.FixedZone("AEST", 10*3600))

	stream, err := NewCollectionStream(StreamHouseholdWaste, anchor, CadenceWeekly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), stream.AnchorDate)
	assert.Equal(t, CadenceWeekly, stream.CadenceDays)

	_, err = NewCollectionStream(StreamCategory("soft-plastics"), anchor, CadenceWeekly)
	require.Error(t, err)

	_, err = NewCollectionStream(StreamOrganics, anchor, 10)
	require.Error(t, err)
}

func TestParseBinType(t *testing.T) {
	assert.Equal(t, BinRed, ParseBinType("red"))
	assert.Equal(t, BinEwaste, ParseBinType("ewaste"))
	assert.Equal(t, BinNone, ParseBinType("none"))

	// Unknown tags fall to none rather than erroring.
	assert.Equal(t, BinNone, ParseBinType("Red"))
	assert.Equal(t, BinNone, ParseBinType("blue"))
	assert.Equal(t, BinNone, ParseBinType(""))
}

func TestBinTypeColor(t *testing.T) {
	assert.Equal(t, "#E74C3C", BinRed.Color())
	assert.Equal(t, "#27AE60", BinGreen.Color())
	assert.Equal(t, "#2DA1E2", BinEwaste.Color())

	// Bins with no accent of their own share the subtle gray.
	assert.Equal(t, BinNone.Color(), BinOther.Color())
}

func TestStreamCategoryDisplay(t *testing.T) {
	assert.Equal(t, "FOGO", StreamOrganics.DisplayName())
	assert.Equal(t, "Household Waste", StreamHouseholdWaste.DisplayName())
	assert.True(t, StreamMixedRecycling.Valid())
	assert.False(t, StreamCategory("hard-rubbish").Valid())
}
