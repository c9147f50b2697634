package recurrence

import (
	"testing"
	"time"

	"github.com/greenloop/kerbside/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccurrences(t *testing.T) {
	tests := []struct {
		name    string
		anchor  time.Time
		cadence int
		start   time.Time
		end     time.Time
		want    []time.Time
	}{
		{
			name:    "anchor on single-day window boundary",
			anchor:  date(2025, 1, 1),
			cadence: 14,
			start:   date(2025, 1, 1),
			end:     date(2025, 1, 1),
			want:    []time.Time{date(2025, 1, 1)},
		},
		{
			name:    "anchor before window, weekly",
			anchor:  date(2025, 1, 1),
			cadence: 7,
			start:   date(2025, 2, 1),
			end:     date(2025, 2, 28),
			want: []time.Time{
				date(2025, 2, 5),
				date(2025, 2, 12),
				date(2025, 2, 19),
				date(2025, 2, 26),
			},
		},
		{
			name:    "anchor inside window includes earlier members",
			anchor:  date(2025, 3, 15),
			cadence: 14,
			start:   date(2025, 3, 1),
			end:     date(2025, 3, 31),
			want: []time.Time{
				date(2025, 3, 1),
				date(2025, 3, 15),
				date(2025, 3, 29),
			},
		},
		{
			name:    "anchor far after window",
			anchor:  date(2026, 6, 3),
			cadence: 14,
			start:   date(2025, 1, 1),
			end:     date(2025, 1, 31),
			want: []time.Time{
				date(2025, 1, 1),
				date(2025, 1, 15),
				date(2025, 1, 29),
			},
		},
		{
			name:    "anchor far before window",
			anchor:  date(2020, 1, 6),
			cadence: 7,
			start:   date(2025, 6, 1),
			end:     date(2025, 6, 15),
			want: []time.Time{
				date(2025, 6, 2),
				date(2025, 6, 9),
			},
		},
		{
			name:    "anchor on window end",
			anchor:  date(2025, 1, 31),
			cadence: 7,
			start:   date(2025, 1, 25),
			end:     date(2025, 1, 31),
			want:    []time.Time{date(2025, 1, 31)},
		},
		{
			name:    "inverted window yields nothing",
			anchor:  date(2025, 1, 1),
			cadence: 7,
			start:   date(2025, 2, 1),
			end:     date(2025, 1, 1),
			want:    nil,
		},
		{
			name:    "empty window with no member",
			anchor:  date(2025, 1, 1),
			cadence: 14,
			start:   date(2025, 1, 2),
			end:     date(2025, 1, 10),
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Occurrences(tt.anchor, tt.cadence, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOccurrencesProperties(t *testing.T) {
	anchors := []time.Time{
		date(2024, 12, 25),
		date(2025, 1, 1),
		date(2025, 7, 19),
		date(2026, 2, 28),
	}
	windows := [][2]time.Time{
		{date(2025, 1, 1), date(2025, 12, 31)},
		{date(2025, 3, 10), date(2025, 3, 10)},
		{date(2024, 11, 1), date(2025, 2, 1)},
	}

	for _, anchor := range anchors {
		for _, cadence := range []int{7, 14} {
			for _, w := range windows {
				got, err := Occurrences(anchor, cadence, w[0], w[1])
				require.NoError(t, err)

				prev := time.Time{}
				for _, d := range got {
					// Every member is congruent to the anchor mod cadence
					// and inside the window.
					days := int(d.Sub(anchor).Hours() / 24)
					assert.Zero(t, ((days%cadence)+cadence)%cadence,
						"date %v not on cadence from anchor %v", d, anchor)
					assert.False(t, d.Before(w[0]))
					assert.False(t, d.After(w[1]))
					if !prev.IsZero() {
						assert.True(t, d.After(prev), "dates not strictly ascending")
					}
					prev = d
				}

				// No member inside the window is omitted.
				expected := 0
				for d := w[0]; !d.After(w[1]); d = d.AddDate(0, 0, 1) {
					days := int(d.Sub(anchor).Hours() / 24)
					if ((days%cadence)+cadence)%cadence == 0 {
						expected++
					}
				}
				assert.Len(t, got, expected)

				// Idempotent: a second call yields identical output.
				again, err := Occurrences(anchor, cadence, w[0], w[1])
				require.NoError(t, err)
				assert.Equal(t, got, again)
			}
		}
	}
}

func TestOccurrencesRejectsInvalidCadence(t *testing.T) {
	for _, cadence := range []int{0, -7} {
		_, err := Occurrences(date(2025, 1, 1), cadence, date(2025, 1, 1), date(2025, 2, 1))
		require.Error(t, err)
	}
}

func TestOccurrencesNormalizesTimeOfDay(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 23, 45, 0, 0, time.UTC)
	got, err := Occurrences(anchor, 7, date(2025, 1, 1), date(2025, 1, 8))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2025, 1, 1), date(2025, 1, 8)}, got)
}

func TestStreamOccurrences(t *testing.T) {
	stream, err := model.NewCollectionStream(model.StreamMixedRecycling, date(2025, 1, 7), model.CadenceFortnightly)
	require.NoError(t, err)

	got, err := StreamOccurrences(stream, date(2025, 1, 1), date(2025, 2, 5))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2025, 1, 7), date(2025, 1, 21), date(2025, 2, 4)}, got)
}
