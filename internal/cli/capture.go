package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/store"
	"github.com/example/dayops/internal/wire"
)

var captureCmd = &cobra.Command{
	Use:   "capture [text...]",
	Short: "Capture raw text into the inbox",
	Long: `Capture a thought into the inbox for later processing.

Token syntax is parsed when the item is processed:
  @name        link or create a person
  #name        link or create a project
  !p1..!p5     priority
  due:DATE     due date (YYYY-MM-DD)
  do:DATE      scheduled date (YYYY-MM-DD)
  type:KIND    target kind (task, meeting, note, reminder, followup, ...)
  work: / personal:   context

Example:
  dayops capture "Book 1:1 with @Harper #Roadmap do:2026-09-01"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		item, err := wire.Store().AddInboxItem(ctx, strings.Join(args, " "))
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Captured %s: %s\n", okMark("✓"), item.ID, item.Raw)
		return nil
	},
}

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Manage captured inbox items",
}

var inboxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inbox items",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		doc := wire.Store().State()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCAPTURED\tSTATE\t")
		count := 0
		for _, item := range doc.Inbox {
			if item.Deleted {
				continue
			}
			if !all && (item.Processed || item.Archived) {
				continue
			}
			state := "open"
			switch {
			case item.Processed:
				state = "processed"
			case item.Archived:
				state = "archived"
			case item.Snoozed:
				state = "snoozed"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", item.ID, truncate(item.Raw, 60), state)
			count++
		}
		w.Flush()
		if count == 0 {
			fmt.Println("Inbox is empty.")
		}
		return nil
	},
}

var inboxSnoozeCmd = &cobra.Command{
	Use:   "snooze [id]",
	Short: "Toggle an inbox item's snooze flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().ToggleSnoozeInbox(context.Background(), args[0]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Toggled snooze on %s\n", okMark("✓"), args[0])
		return nil
	},
}

var inboxArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Toggle an inbox item's archived flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().ToggleArchiveInbox(context.Background(), args[0]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Toggled archive on %s\n", okMark("✓"), args[0])
		return nil
	},
}

var inboxProcessCmd = &cobra.Command{
	Use:   "process [id]",
	Short: "Convert an inbox item into its target entity",
	Long: `Process a captured item into a task, meeting, note, reminder,
follow-up, project, or person.

Explicit flags override parsed tokens, which override heuristics,
which override defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetType, _ := cmd.Flags().GetString("as")
		title, _ := cmd.Flags().GetString("title")
		due, _ := cmd.Flags().GetString("due")
		scheduled, _ := cmd.Flags().GetString("scheduled")
		priority, _ := cmd.Flags().GetInt("priority")
		taskContext, _ := cmd.Flags().GetString("context")
		meetingTime, _ := cmd.Flags().GetString("time")
		agenda, _ := cmd.Flags().GetString("agenda")
		content, _ := cmd.Flags().GetString("content")
		recipients, _ := cmd.Flags().GetStringSlice("recipient")

		fields := store.ProcessFields{
			Title:     title,
			Due:       due,
			Scheduled: scheduled,
			Priority:  priority,
			Context:   taskContext,
			Time:      meetingTime,
			Agenda:    agenda,
			Content:   content,
		}
		for _, personID := range recipients {
			fields.Recipients = append(fields.Recipients, validate.Recipient{PersonID: personID})
		}

		createdID, err := wire.Store().ProcessInboxItem(context.Background(), args[0], targetType, fields)
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Processed %s into %s\n", okMark("✓"), args[0], createdID)
		return nil
	},
}

// CaptureCmd returns the capture command.
func CaptureCmd() *cobra.Command {
	return captureCmd
}

// InboxCmd returns the inbox command tree.
func InboxCmd() *cobra.Command {
	return inboxCmd
}

func init() {
	inboxListCmd.Flags().Bool("all", false, "Include processed and archived items")

	inboxProcessCmd.Flags().String("as", "", "Target kind (task, meeting, note, reminder, followup, project, person)")
	inboxProcessCmd.Flags().String("title", "", "Explicit title (overrides parsed text)")
	inboxProcessCmd.Flags().String("due", "", "Due date YYYY-MM-DD")
	inboxProcessCmd.Flags().String("scheduled", "", "Scheduled date YYYY-MM-DD")
	inboxProcessCmd.Flags().Int("priority", 0, "Priority 1-5")
	inboxProcessCmd.Flags().String("context", "", "Context (work, personal)")
	inboxProcessCmd.Flags().String("time", "", "Meeting time HH:MM")
	inboxProcessCmd.Flags().String("agenda", "", "Meeting agenda")
	inboxProcessCmd.Flags().String("content", "", "Note content")
	inboxProcessCmd.Flags().StringSlice("recipient", nil, "Follow-up recipient person id (repeatable)")

	inboxCmd.AddCommand(inboxListCmd)
	inboxCmd.AddCommand(inboxSnoozeCmd)
	inboxCmd.AddCommand(inboxArchiveCmd)
	inboxCmd.AddCommand(inboxProcessCmd)
}
