package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dayops/internal/cli"
	"github.com/example/dayops/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "dayops",
		Short:   "dayops - capture, plan, execute, close",
		Version: version.String(),
		Long: `dayops is a local-first personal workflow tool. Capture thoughts
into an inbox, process them into tasks, meetings and follow-ups, plan
the day from derived suggestions, and close the day into an immutable
log. State lives in a local database and merges across devices through
exported snapshot files.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.CaptureCmd())
	rootCmd.AddCommand(cli.InboxCmd())
	rootCmd.AddCommand(cli.PlanCmd())
	rootCmd.AddCommand(cli.TodayCmd())
	rootCmd.AddCommand(cli.CloseCmd())
	rootCmd.AddCommand(cli.LogsCmd())
	rootCmd.AddCommand(cli.LibraryCmd())
	rootCmd.AddCommand(cli.BackupCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.StorageCmd())
	rootCmd.AddCommand(cli.DemoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
