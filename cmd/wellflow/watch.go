package wellflow

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/service"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live fasting timer with day rollover checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := service.ClockOptions{}
		if cfg != nil {
			opts.RefreshInterval = cfg.Clock.Refresh
			opts.BoundaryInterval = cfg.Clock.BoundaryCheck
		}
		return withApp(cmd, func(a *service.App) error {
			out := cmd.OutOrStdout()
			if _, ok := a.FastProgress(); !ok {
				fmt.Fprintln(out, "No active fast; watching for day rollover (Ctrl+C to stop)")
			}
			opts.OnRefresh = func(p service.FastProgress) {
				fmt.Fprintf(out, "\r%s  %5.1f%%  %-24s", service.FormatDuration(p.ElapsedMs), p.Percentage, p.Stage.Name)
			}
			opts.OnBoundary = func(at time.Time) {
				fmt.Fprintf(out, "\nNew day %s: daily totals reset\n", at.Format("2006-01-02"))
			}
			if err := service.RunClock(ctx, a, opts); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
