// Package records fetches raw per-address collection records from the
// council open-data service and maps them onto collection streams.
package records

import (
	"log/slog"
	"time"

	"github.com/greenloop/kerbside/internal/model"
)

// Record is one raw waste-collection-days row. Every field is optional; an
// absent next-date simply means the stream is not tracked for the address.
type Record struct {
	Propnum       *string `json:"propnum"`
	Address       *string `json:"address"`
	Collectionday *string `json:"collectionday"`
	NextWaste     *string `json:"nextwaste"`
	NextRecycle   *string `json:"nextrecycle"`
	NextGreen     *string `json:"nextgreen"`
	Suburb        *string `json:"suburb"`
	Street        *string `json:"street"`
	ServiceType   *string `json:"service_type"`
	CollectionDay *string `json:"collection_day"`
	Zone          *int    `json:"zone"`
}

// Streams maps the record's present next-dates onto collection streams.
// Household waste runs weekly; recycling and organics run fortnightly.
// Unparseable dates are skipped with a warning rather than failing the whole
// record.
func (r Record) Streams(logger *slog.Logger) []model.CollectionStream {
	sources := []struct {
		date     *string
		category model.StreamCategory
		cadence  int
	}{
		{r.NextWaste, model.StreamHouseholdWaste, model.CadenceWeekly},
		{r.NextRecycle, model.StreamMixedRecycling, model.CadenceFortnightly},
		{r.NextGreen, model.StreamOrganics, model.CadenceFortnightly},
	}

	var streams []model.CollectionStream
	for _, src := range sources {
		if src.date == nil || *src.date == "" {
			continue
		}

		anchor, err := time.Parse("2006-01-02", *src.date)
		if err != nil {
			logger.Warn("skipping stream with malformed date",
				"category", src.category,
				"date", *src.date,
				"error", err)
			continue
		}

		stream, err := model.NewCollectionStream(src.category, anchor, src.cadence)
		if err != nil {
			logger.Warn("skipping invalid stream", "category", src.category, "error", err)
			continue
		}
		streams = append(streams, stream)
	}
	return streams
}
