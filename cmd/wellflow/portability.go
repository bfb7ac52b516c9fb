package wellflow

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/service"
)

var (
	exportOut    string
	importIn     string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *service.App) error {
			out := strings.TrimSpace(exportOut)
			if out == "" {
				out = service.ExportFileName(a.Now())
			}
			b, err := service.MarshalExport(a.Export())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", out)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import data from a JSON export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		raw, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		data, err := service.DecodeImport(raw)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *service.App) error {
			report, err := a.Import(data, service.ImportOptions{DryRun: importDryRun})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Import report: imported=%s skipped=%s\n",
				strings.Join(report.Imported, ","), strings.Join(report.Skipped, ","))
			if importDryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry-run import validated %s\n", importIn)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", importIn)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (default wellflow-export-<timestamp>.json)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing data")
}
