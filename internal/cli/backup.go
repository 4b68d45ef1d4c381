package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dayops/internal/wire"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import snapshot files",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the document as a snapshot file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := wire.Store().ExportSnapshot()
		if err != nil {
			return renderError(err)
		}
		data, err := snapshot.Marshal()
		if err != nil {
			return renderError(err)
		}

		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		fmt.Printf("%s Exported snapshot to %s (schema v%d, device %s)\n",
			okMark("✓"), args[0], snapshot.SchemaVersion, snapshot.DeviceID)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Merge a snapshot file into the local document",
	Long: `Merge an exported snapshot into local state. Records present on
both sides merge field-by-field using per-field write stamps; the
later write wins, with ties going to the imported side. Local-only
records are kept and import-only records are appended. The import is
atomic: a structural problem rejects the whole file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		result, err := wire.Store().ImportSnapshot(context.Background(), data)
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("%s Imported %s: %d record(s) merged, %d added\n",
			okMark("✓"), args[0], result.Merged, result.Added)
		return nil
	},
}

// BackupCmd returns the backup command tree.
func BackupCmd() *cobra.Command {
	return backupCmd
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}
