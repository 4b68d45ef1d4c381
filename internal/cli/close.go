package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/dayops/internal/wire"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close out the day",
	Long: `Run the close-day gate and, when it passes, snapshot the plan
into a daily log and clear it.

The gate blocks until every incomplete Today item carries a trailing
update note and the inbox holds no unprocessed or snoozed items.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		check, _ := cmd.Flags().GetBool("check")
		if check {
			readiness := wire.Store().CheckCloseReadiness()
			if readiness.Ready() {
				fmt.Printf("%s Ready to close.\n", okMark("✓"))
				return nil
			}
			fmt.Printf("%s Not ready to close:\n", failMark("✗"))
			if len(readiness.MissingTodayNotes) > 0 {
				fmt.Printf("  missing update notes: %s\n", strings.Join(readiness.MissingTodayNotes, ", "))
			}
			if len(readiness.SnoozedInbox) > 0 {
				fmt.Printf("  snoozed inbox items: %s\n", strings.Join(readiness.SnoozedInbox, ", "))
			}
			if len(readiness.UnprocessedInbox) > 0 {
				fmt.Printf("  unprocessed inbox items: %s\n", strings.Join(readiness.UnprocessedInbox, ", "))
			}
			return nil
		}

		log, err := wire.Store().CloseDay(context.Background())
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Day closed. %s\n", okMark("✓"), log.Note)
		fmt.Printf("  log %s: %d planned, %d completed, %d incomplete\n",
			log.ID, len(log.Planned), len(log.Completed), len(log.Incomplete))
		return nil
	},
}

var closeSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record a daily log of the current plan without closing",
	RunE: func(cmd *cobra.Command, args []string) error {
		note, _ := cmd.Flags().GetString("note")
		log, err := wire.Store().GenerateDailyLogSnapshot(context.Background(), note)
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Logged %s: %s\n", okMark("✓"), log.ID, log.Note)
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List daily logs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		doc := wire.Store().State()

		if len(doc.DailyLogs) == 0 {
			fmt.Println("No daily logs yet.")
			return nil
		}
		for i, log := range doc.DailyLogs {
			if limit > 0 && i >= limit {
				break
			}
			fmt.Printf("%s  %s  %-8s  %d/%d complete  %s\n",
				log.ID, log.Date, log.Kind, len(log.Completed), len(log.Planned), dimText(log.Note))
		}
		return nil
	},
}

// CloseCmd returns the close command tree.
func CloseCmd() *cobra.Command {
	return closeCmd
}

// LogsCmd returns the logs command.
func LogsCmd() *cobra.Command {
	return logsCmd
}

func init() {
	closeCmd.Flags().Bool("check", false, "Only evaluate the readiness gate")
	closeSnapshotCmd.Flags().String("note", "", "Note to store on the log")
	closeCmd.AddCommand(closeSnapshotCmd)
	logsCmd.Flags().Int("limit", 10, "Maximum number of logs to show")
}
