package main

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/greenloop/kerbside/internal/cli"
	"github.com/greenloop/kerbside/internal/common"
	"github.com/greenloop/kerbside/internal/config"
	"github.com/greenloop/kerbside/internal/model"
	"github.com/greenloop/kerbside/internal/records"
	"github.com/greenloop/kerbside/internal/recurrence"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show upcoming collection days for your address",
		Long: `Look up your address's collection schedule from the council's open-data
service and show the upcoming bin days.

Examples:
  kerbside calendar                      # next 4 weeks
  kerbside calendar --weeks 8            # further ahead
  kerbside calendar --address "12 Sturt St"`,
		RunE: runCalendar,
	}

	cmd.Flags().IntP("weeks", "w", 4, "how many weeks ahead to show")
	_ = viper.BindPFlag("calendar.weeks", cmd.Flags().Lookup("weeks"))

	return cmd
}

// calendarEntry pairs one collection date with its stream for sorting.
type calendarEntry struct {
	date     time.Time
	category model.StreamCategory
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	weeks := viper.GetInt("calendar.weeks")
	if weeks <= 0 {
		return fmt.Errorf("weeks must be positive")
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}
	address, err := settings.RequireAddress()
	if err != nil {
		return err
	}

	client := records.NewClient(viper.GetString("records.base_url"), slog.Default())
	streams, err := client.StreamsForAddress(ctx, address)
	if err != nil {
		if errors.Is(err, common.ErrNoCollectionData) {
			return fmt.Errorf("no collection data found for %q; check the address matches the council records", address)
		}
		return err
	}

	now := time.Now()
	end := now.AddDate(0, 0, weeks*7)

	var entries []calendarEntry
	for _, stream := range streams {
		dates, err := recurrence.StreamOccurrences(stream, now, end)
		if err != nil {
			return err
		}
		for _, date := range dates {
			entries = append(entries, calendarEntry{date: date, category: stream.Category})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].date.Equal(entries[j].date) {
			return entries[i].category < entries[j].category
		}
		return entries[i].date.Before(entries[j].date)
	})

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Collections for %s", address)))
	if len(entries) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No collections in the selected window."))
		return nil
	}

	header := cli.TableHeaderStyle.Render(fmt.Sprintf("%-16s %-12s %s", "Date", "Day", "Stream"))
	fmt.Println(header)
	for _, entry := range entries {
		row := fmt.Sprintf("%-16s %-12s %s %s",
			entry.date.Format("Jan 2, 2006"),
			entry.date.Format("Monday"),
			entry.category.Emoji(),
			entry.category.DisplayName())
		fmt.Println(cli.TableCellStyle.Render(row))
	}

	return nil
}
