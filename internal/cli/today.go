package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/dayops/internal/wire"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Work the Today plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := wire.Store().State()
		if len(doc.Today) == 0 {
			fmt.Println("The Today plan is empty. Add items with 'dayops plan'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for i, item := range doc.Today {
			if item.Deleted {
				continue
			}
			note := ""
			if last, ok := item.LastNote(); ok {
				note = dimText(truncate(last.Text, 40))
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
				i, statusIcon(item.Execution.Status), item.ID,
				truncate(item.Title, 50), item.Execution.Status, note)
		}
		w.Flush()
		return nil
	},
}

var todayStatusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Set a plan item's execution status",
	Long: `Set a Today item's execution status. Valid statuses:
not started, in progress, waiting, blocked, complete, cancelled,
deferred, archived. Multi-word statuses go in quotes.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := strings.Join(args[1:], " ")
		if err := wire.Store().SetTodayStatus(context.Background(), args[0], status); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s %s is now %q\n", okMark("✓"), args[0], status)
		return nil
	},
}

var todayNoteCmd = &cobra.Command{
	Use:   "note [id] [text...]",
	Short: "Append an update note to a plan item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args[1:], " ")
		if err := wire.Store().AddTodayUpdateNote(context.Background(), args[0], text); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Noted on %s\n", okMark("✓"), args[0])
		return nil
	},
}

var todayDeferCmd = &cobra.Command{
	Use:   "defer [id]",
	Short: "Defer a plan item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().DeferTodayItem(context.Background(), args[0]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Deferred %s\n", okMark("✓"), args[0])
		return nil
	},
}

var todayArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a plan item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().ArchiveTodayItem(context.Background(), args[0]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Archived %s\n", okMark("✓"), args[0])
		return nil
	},
}

var todayMoveCmd = &cobra.Command{
	Use:   "move [id] [index]",
	Short: "Move a plan item to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var index int
		if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
			return fmt.Errorf("index must be a number: %q", args[1])
		}
		if err := wire.Store().ReorderToday(context.Background(), args[0], index); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Moved %s to position %d\n", okMark("✓"), args[0], index)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build the Today plan from suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := wire.Store().State()

		printBucket := func(name string, header string) {
			items := doc.Suggestions.Bucket(name)
			if len(items) == 0 {
				return
			}
			fmt.Println(header)
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, sg := range items {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t\n", sg.ID, truncate(sg.Title, 50), dimText(sg.Meta))
			}
			tw.Flush()
		}
		printBucket("must", failMark("MUST"))
		printBucket("should", warnMark("SHOULD"))
		printBucket("could", dimText("COULD"))

		if len(doc.Suggestions.All()) == 0 {
			fmt.Println("No suggestions. Capture and process items first, or run 'dayops plan rebuild'.")
		}
		return nil
	},
}

var planAddCmd = &cobra.Command{
	Use:   "add [suggestion-id]",
	Short: "Add a suggestion to the Today plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := wire.Store().AddSuggestionToToday(context.Background(), args[0])
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Planned as %s\n", okMark("✓"), itemID)
		return nil
	},
}

var planCustomCmd = &cobra.Command{
	Use:   "custom [title...]",
	Short: "Add a free-form item to the Today plan",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := wire.Store().AddCustomTodayItem(context.Background(), strings.Join(args, " "))
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Planned as %s\n", okMark("✓"), itemID)
		return nil
	},
}

var planRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Recompute suggestions from live state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().RebuildSuggestions(context.Background()); err != nil {
			return renderError(err)
		}
		doc := wire.Store().State()
		fmt.Printf("%s Rebuilt: %d must, %d should, %d could\n", okMark("✓"),
			len(doc.Suggestions.Must), len(doc.Suggestions.Should), len(doc.Suggestions.Could))
		return nil
	},
}

var planBucketCmd = &cobra.Command{
	Use:   "bucket [suggestion-id] [must|should|could]",
	Short: "Move a suggestion between buckets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().SetSuggestionBucket(context.Background(), args[0], args[1]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Moved %s to %s\n", okMark("✓"), args[0], args[1])
		return nil
	},
}

// TodayCmd returns the today command tree.
func TodayCmd() *cobra.Command {
	return todayCmd
}

// PlanCmd returns the plan command tree.
func PlanCmd() *cobra.Command {
	return planCmd
}

func init() {
	todayCmd.AddCommand(todayStatusCmd)
	todayCmd.AddCommand(todayNoteCmd)
	todayCmd.AddCommand(todayDeferCmd)
	todayCmd.AddCommand(todayArchiveCmd)
	todayCmd.AddCommand(todayMoveCmd)

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planCustomCmd)
	planCmd.AddCommand(planRebuildCmd)
	planCmd.AddCommand(planBucketCmd)
}
