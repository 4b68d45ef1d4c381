package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/dayops/internal/models"
	"github.com/example/dayops/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show document and storage status",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := wire.Store()
		doc := s.State()

		if notice := s.RolloverNotice(); notice != nil {
			fmt.Printf("%s New day: %s → %s, %d item(s) recovered into a daily log\n\n",
				warnMark("⤷"), notice.PreviousDate, notice.CurrentDate, notice.RecoveredItemCount)
			s.DismissRolloverNotice()
		}

		storage := doc.StorageStatus
		switch storage {
		case models.StorageReady:
			fmt.Printf("storage:  %s\n", okMark(storage))
		case models.StorageDegraded:
			fmt.Printf("storage:  %s  (run 'dayops storage retry')\n", failMark(storage))
		default:
			fmt.Printf("storage:  %s\n", storage)
		}
		fmt.Printf("date:     %s\n", doc.LastActiveDate)
		if doc.IsDemoMode {
			fmt.Printf("mode:     %s\n", warnMark("demo data"))
		}

		open := 0
		for _, item := range doc.Inbox {
			if item.Active() && !item.Processed {
				open++
			}
		}
		fmt.Printf("inbox:    %d open item(s)\n", open)
		fmt.Printf("today:    %d item(s) planned\n", len(doc.Today))
		fmt.Printf("suggest:  %d must / %d should / %d could\n",
			len(doc.Suggestions.Must), len(doc.Suggestions.Should), len(doc.Suggestions.Could))

		if warnings := s.Warnings(); len(warnings) > 0 {
			fmt.Println()
			for _, warning := range warnings {
				fmt.Printf("%s %s\n", warnMark("!"), warning)
			}
		}
		return nil
	},
}

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect and recover the storage backend",
}

var storageStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persistence state",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(wire.Store().StorageStatus())
		return nil
	},
}

var storageRetryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Re-probe the backend after a degraded start",
	Long: `Retry storage initialization. In-memory changes made while
degraded are flushed on success; nothing is discarded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().RetryStorageInitialization(context.Background()); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Storage is %s\n", okMark("✓"), wire.Store().StorageStatus())
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Load or clear the demo dataset",
}

var demoLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace local data with a synthetic demo dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().LoadSampleData(context.Background()); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Demo data loaded. Clear it with 'dayops demo reset'.\n", okMark("✓"))
		return nil
	},
}

var demoResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all local data and start fresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this erases all local data; pass --yes to confirm")
		}
		if err := wire.Store().ResetAllLocalData(context.Background()); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Local data reset.\n", okMark("✓"))
		return nil
	},
}

// StatusCmd returns the status command.
func StatusCmd() *cobra.Command {
	return statusCmd
}

// StorageCmd returns the storage command tree.
func StorageCmd() *cobra.Command {
	return storageCmd
}

// DemoCmd returns the demo command tree.
func DemoCmd() *cobra.Command {
	return demoCmd
}

func init() {
	storageCmd.AddCommand(storageStatusCmd)
	storageCmd.AddCommand(storageRetryCmd)

	demoResetCmd.Flags().Bool("yes", false, "Confirm erasing all local data")
	demoCmd.AddCommand(demoLoadCmd)
	demoCmd.AddCommand(demoResetCmd)
}
