package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/greenloop/kerbside/internal/cli"
	"github.com/greenloop/kerbside/internal/config"
	"github.com/greenloop/kerbside/internal/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [description]",
		Short: "Report a classification or collection-data problem",
		Long: `Record a problem report: a misclassified item, wrong collection data, or
anything else worth flagging to council. Reports are stored locally.

Examples:
  kerbside report "Glass jars were classified as general waste"
  kerbside report --list`,
		RunE: runReport,
	}

	cmd.Flags().StringP("name", "n", "", "your name (optional)")
	cmd.Flags().StringP("email", "e", "", "contact email (optional)")
	cmd.Flags().BoolP("list", "l", false, "list stored reports instead of filing one")

	_ = viper.BindPFlag("report.name", cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("report.email", cmd.Flags().Lookup("email"))
	_ = viper.BindPFlag("report.list", cmd.Flags().Lookup("list"))

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := config.Load()
	if err != nil {
		return err
	}

	queue, err := notify.NewSQLiteQueue(settings.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer closeQueue(queue)

	if viper.GetBool("report.list") {
		reports, err := queue.ListReports(ctx)
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			fmt.Println(cli.SubtleStyle.Render("No reports filed."))
			return nil
		}

		fmt.Println(cli.FormatTitle("Problem reports"))
		for _, report := range reports {
			fmt.Printf("  %s  %s\n",
				cli.SubtleStyle.Render(report.CreatedAt.Format("2006-01-02")),
				report.Description)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("describe the problem, or use --list to see stored reports")
	}

	id, err := queue.SaveReport(ctx,
		viper.GetString("report.name"),
		viper.GetString("report.email"),
		strings.Join(args, " "))
	if err != nil {
		return err
	}

	slog.Debug("problem report saved", "id", id)
	fmt.Println(cli.FormatSuccess("Report saved. Thanks for helping improve the data."))
	return nil
}
