package wellflow

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/service"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake, burn, and remaining budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *service.App) error {
			l := a.Today()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", l.Date)
			fmt.Fprintf(out, "Limit: %s\n", formatKcal(l.Limit))
			fmt.Fprintf(out, "Consumed: %s\n", formatKcal(l.Consumed()))
			fmt.Fprintf(out, "Burned: %s\n", formatKcal(l.Burned()))
			fmt.Fprintf(out, "Net: %s\n", formatKcal(l.Net()))
			fmt.Fprintf(out, "Remaining: %s\n", formatKcal(l.Remaining()))
			fmt.Fprintf(out, "Progress: %.1f%%\n", l.Percentage())
			if !l.LimitValid() {
				fmt.Fprintln(out, "Warning: daily limit is not positive; check your profile")
			}
			if l.IsOverOrNearLimit() {
				fmt.Fprintln(out, "Warning: at or near your daily limit")
			}
			if p, ok := a.FastProgress(); ok {
				fmt.Fprintf(out, "Fasting: %s (%s)\n", service.FormatDuration(p.ElapsedMs), p.Stage.Name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
