package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/greenloop/kerbside/internal/cli"
	"github.com/greenloop/kerbside/internal/common"
	"github.com/greenloop/kerbside/internal/config"
	"github.com/greenloop/kerbside/internal/notify"
	"github.com/greenloop/kerbside/internal/records"
	"github.com/greenloop/kerbside/internal/schedule"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func remindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage bin-night reminders",
		Long: `Manage the local reminder queue: schedule a fresh year of bin-night
reminders, prune expired ones, or check how the queue is holding up.`,
	}

	cmd.AddCommand(remindScheduleCmd())
	cmd.AddCommand(remindPruneCmd())
	cmd.AddCommand(remindStatusCmd())

	return cmd
}

func remindScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Replace the reminder schedule with a fresh 12 months",
		Long: `Fetch current collection data for your address and rebuild the reminder
queue: every existing collection reminder is cancelled and one reminder per
collection over the next 12 months is registered, firing the evening before
at your chosen time.

Examples:
  kerbside remind schedule
  kerbside remind schedule --time 19:30`,
		RunE: runRemindSchedule,
	}

	cmd.Flags().StringP("time", "t", "", "reminder time of day (HH:MM, default 18:00)")
	_ = viper.BindPFlag("reminders.time", cmd.Flags().Lookup("time"))

	return cmd
}

func runRemindSchedule(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

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

	queue, err := notify.NewSQLiteQueue(settings.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open reminder queue: %w", err)
	}
	defer closeQueue(queue)

	scheduler := schedule.NewScheduler(queue, slog.Default())
	outcome, err := scheduler.ScheduleReminders(ctx, streams, settings.ReminderTime, time.Local, address, time.Now())
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Scheduled %d reminders through the next 12 months", outcome.Scheduled)))
	if outcome.Failed > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d reminders could not be registered", outcome.Failed)))
	}
	return nil
}

func remindPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired reminders from the queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			queue, err := notify.NewSQLiteQueue(settings.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open reminder queue: %w", err)
			}
			defer closeQueue(queue)

			scheduler := schedule.NewScheduler(queue, slog.Default())
			removed, err := scheduler.PruneExpired(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %d expired reminders", removed)))
			return nil
		},
	}
}

func remindStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show reminder queue health",
		Long: `Show how many collection reminders are queued and whether the schedule is
running thin enough to warrant a fresh 'remind schedule' pass.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := config.Load()
			if err != nil {
				return err
			}

			queue, err := notify.NewSQLiteQueue(settings.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open reminder queue: %w", err)
			}
			defer closeQueue(queue)

			scheduler := schedule.NewScheduler(queue, slog.Default())
			now := time.Now()

			count, err := scheduler.PendingCount(ctx)
			if err != nil {
				return err
			}
			needsRenewal, remaining, err := scheduler.NeedsRenewal(ctx, now)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(cli.BellIcon + " Reminder queue"))
			fmt.Printf("  Queued collection reminders: %d\n", count)
			fmt.Printf("  Remaining beyond six months: %d\n", remaining)
			if needsRenewal {
				fmt.Println(cli.FormatWarning("Schedule is running thin; run 'kerbside remind schedule'"))
			} else {
				fmt.Println(cli.FormatSuccess("Schedule is healthy"))
			}
			return nil
		},
	}
}

func closeQueue(queue *notify.SQLiteQueue) {
	if err := queue.Close(); err != nil {
		slog.Error("Failed to close reminder queue", "error", err)
	}
}
