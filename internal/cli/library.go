package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/dayops/internal/models"
	"github.com/example/dayops/internal/store"
	"github.com/example/dayops/internal/wire"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse and edit the entity library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list [collection]",
	Short: "List records in a collection",
	Long: `List records in one of: tasks, meetings, people, projects,
reminders, notes, followUps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		doc := wire.Store().State()
		collection := args[0]

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		count := 0
		row := func(id, label, extra string, lifecycle models.Lifecycle) {
			if !all && !lifecycle.Active() {
				return
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, truncate(label, 50), extra, lifecycleLabel(lifecycle))
			count++
		}

		switch collection {
		case models.CollectionTasks:
			for _, r := range doc.Tasks {
				extra := r.Status
				if r.Due != "" {
					extra += "  due " + r.Due
				}
				row(r.ID, r.Title, extra, r.Lifecycle)
			}
		case models.CollectionMeetings:
			for _, r := range doc.Meetings {
				extra := r.ScheduleDate
				if r.Time != "" {
					extra += " " + r.Time
				}
				row(r.ID, r.Title, extra, r.Lifecycle)
			}
		case models.CollectionPeople:
			for _, r := range doc.People {
				row(r.ID, r.Name, r.Email, r.Lifecycle)
			}
		case models.CollectionProjects:
			for _, r := range doc.Projects {
				row(r.ID, r.Name, r.Status, r.Lifecycle)
			}
		case models.CollectionReminders:
			for _, r := range doc.Reminders {
				row(r.ID, r.Title, r.Due, r.Lifecycle)
			}
		case models.CollectionNotes:
			for _, r := range doc.Notes {
				row(r.ID, r.Title, "", r.Lifecycle)
			}
		case models.CollectionFollowUps:
			for _, r := range doc.FollowUps {
				row(r.ID, r.Title, fmt.Sprintf("%d pending", len(r.PendingRecipients())), r.Lifecycle)
			}
		default:
			return fmt.Errorf("unknown collection %q", collection)
		}

		w.Flush()
		if count == 0 {
			fmt.Println("No records.")
		}
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "task [id]",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update store.TaskUpdate
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			update.Title = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			update.Status = &v
		}
		if cmd.Flags().Changed("due") {
			v, _ := cmd.Flags().GetString("due")
			update.Due = &v
		}
		if cmd.Flags().Changed("scheduled") {
			v, _ := cmd.Flags().GetString("scheduled")
			update.Scheduled = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetInt("priority")
			update.Priority = &v
		}
		if cmd.Flags().Changed("context") {
			v, _ := cmd.Flags().GetString("context")
			update.Context = &v
		}

		if err := wire.Store().UpdateTask(context.Background(), args[0], update); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Updated task %s\n", okMark("✓"), args[0])
		return nil
	},
}

var meetingUpdateCmd = &cobra.Command{
	Use:   "meeting [id]",
	Short: "Update a meeting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update store.MeetingUpdate
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			update.Title = &v
		}
		if cmd.Flags().Changed("date") {
			v, _ := cmd.Flags().GetString("date")
			update.ScheduleDate = &v
		}
		if cmd.Flags().Changed("time") {
			v, _ := cmd.Flags().GetString("time")
			update.Time = &v
		}
		if cmd.Flags().Changed("type") {
			v, _ := cmd.Flags().GetString("type")
			update.MeetingType = &v
		}
		if cmd.Flags().Changed("agenda") {
			v, _ := cmd.Flags().GetString("agenda")
			update.Agenda = &v
		}
		if cmd.Flags().Changed("notes") {
			v, _ := cmd.Flags().GetString("notes")
			update.Notes = &v
		}

		if err := wire.Store().UpdateMeeting(context.Background(), args[0], update); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Updated meeting %s\n", okMark("✓"), args[0])
		return nil
	},
}

var followupToggleCmd = &cobra.Command{
	Use:   "followup [id] [person-id]",
	Short: "Toggle a follow-up recipient between pending and complete",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().ToggleFollowUpRecipient(context.Background(), args[0], args[1]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Toggled recipient %s on %s\n", okMark("✓"), args[1], args[0])
		return nil
	},
}

var libraryArchiveCmd = &cobra.Command{
	Use:   "archive [collection] [id]",
	Short: "Toggle a record's archived flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().ToggleArchiveEntity(context.Background(), args[0], args[1]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Toggled archive on %s\n", okMark("✓"), args[1])
		return nil
	},
}

var libraryRestoreCmd = &cobra.Command{
	Use:   "restore [collection] [id]",
	Short: "Restore an archived or deleted record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Store().RestoreEntity(context.Background(), args[0], args[1]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Restored %s\n", okMark("✓"), args[1])
		return nil
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete [collection] [id]",
	Short: "Delete a record",
	Long: `Soft-delete tombstones the record; it stays recoverable via
'library restore'. Passing --hard removes it permanently and requires
--confirm DELETE.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hard, _ := cmd.Flags().GetBool("hard")
		phrase, _ := cmd.Flags().GetString("confirm")

		if hard {
			if err := wire.Store().HardDeleteEntity(context.Background(), args[0], args[1], phrase); err != nil {
				return renderError(err)
			}
			fmt.Printf("%s Permanently deleted %s\n", okMark("✓"), args[1])
			return nil
		}

		if err := wire.Store().SoftDeleteEntity(context.Background(), args[0], args[1]); err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Deleted %s (recoverable with 'library restore')\n", okMark("✓"), args[1])
		return nil
	},
}

// LibraryCmd returns the library command tree.
func LibraryCmd() *cobra.Command {
	return libraryCmd
}

func init() {
	libraryListCmd.Flags().Bool("all", false, "Include archived and deleted records")

	taskUpdateCmd.Flags().String("title", "", "New title")
	taskUpdateCmd.Flags().String("status", "", "New status")
	taskUpdateCmd.Flags().String("due", "", "Due date YYYY-MM-DD (empty clears)")
	taskUpdateCmd.Flags().String("scheduled", "", "Scheduled date YYYY-MM-DD (empty clears)")
	taskUpdateCmd.Flags().Int("priority", 0, "Priority 1-5 (0 clears)")
	taskUpdateCmd.Flags().String("context", "", "Context (work, personal)")

	meetingUpdateCmd.Flags().String("title", "", "New title")
	meetingUpdateCmd.Flags().String("date", "", "Schedule date YYYY-MM-DD")
	meetingUpdateCmd.Flags().String("time", "", "Meeting time HH:MM")
	meetingUpdateCmd.Flags().String("type", "", "Meeting type (group, one_to_one)")
	meetingUpdateCmd.Flags().String("agenda", "", "Agenda text")
	meetingUpdateCmd.Flags().String("notes", "", "Notes text")

	libraryDeleteCmd.Flags().Bool("hard", false, "Remove permanently instead of tombstoning")
	libraryDeleteCmd.Flags().String("confirm", "", "Type DELETE to confirm a hard delete")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(taskUpdateCmd)
	libraryCmd.AddCommand(meetingUpdateCmd)
	libraryCmd.AddCommand(followupToggleCmd)
	libraryCmd.AddCommand(libraryArchiveCmd)
	libraryCmd.AddCommand(libraryRestoreCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
}
