package wellflow

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/service"
	"github.com/leomerlubo/wellflow/internal/store"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st store.Store) error {
			report, err := service.RunDoctor(st, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Unreadable records: %d %s\n", len(report.UnreadableRecords), strings.Join(report.UnreadableRecords, ","))
			fmt.Fprintf(out, "Duplicate log ids: %d\n", report.DuplicateLogIDs)
			fmt.Fprintf(out, "Negative fast durations: %d\n", report.NegativeDurations)
			if doctorFix {
				fmt.Fprintf(out, "Fixed records: %d\n", len(report.FixedRecords))
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(st, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Reset unreadable records and drop duplicate log ids")
}
