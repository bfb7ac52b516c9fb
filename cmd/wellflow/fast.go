package wellflow

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/service"
)

var (
	fastDate     string
	fastTime     string
	fastHistoryN int
)

var fastCmd = &cobra.Command{
	Use:   "fast",
	Short: "Track intermittent fasting",
}

var fastStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a fast now or at --date/--time",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(fastDate, fastTime)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *service.App) error {
			if err := a.StartFast(at); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fast started at %s\n", at.Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var fastEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active fast",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *service.App) error {
			session, err := a.EndFast()
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No active fast")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fast ended after %s\n", service.FormatDuration(session.DurationMs))
			return nil
		})
	},
}

var fastStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active fast's progress and stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *service.App) error {
			p, ok := a.FastProgress()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No active fast")
				return nil
			}
			printProgress(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

var fastHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent fasts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *service.App) error {
			history := a.FastingHistory()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "STARTED\tENDED\tDURATION")
			for _, s := range service.RecentFasts(history, fastHistoryN) {
				fmt.Fprintf(out, "%s\t%s\t%s\n",
					s.StartedAt.Local().Format("2006-01-02 15:04"),
					s.EndedAt.Local().Format("2006-01-02 15:04"),
					service.FormatDuration(s.DurationMs))
			}
			stats := service.SummarizeFasts(history)
			fmt.Fprintf(out, "Total fasts: %d | longest %s | average %s\n",
				stats.Count, service.FormatDuration(stats.LongestMs), service.FormatDuration(stats.AverageMs))
			return nil
		})
	},
}

func printProgress(w io.Writer, p service.FastProgress) {
	fmt.Fprintf(w, "Started: %s\n", p.StartedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Elapsed: %s\n", service.FormatDuration(p.ElapsedMs))
	fmt.Fprintf(w, "Goal: %.0f%% of %dh (%s to go)\n", p.Percentage, service.FastingGoalHours, service.FormatDuration(p.RemainingMs))
	fmt.Fprintf(w, "Stage: %s - %s\n", p.Stage.Name, p.Stage.Description)
}

func init() {
	rootCmd.AddCommand(fastCmd)
	fastCmd.AddCommand(fastStartCmd, fastEndCmd, fastStatusCmd, fastHistoryCmd)

	fastStartCmd.Flags().StringVar(&fastDate, "date", "", "Start date YYYY-MM-DD")
	fastStartCmd.Flags().StringVar(&fastTime, "time", "", "Start time HH:MM")
	fastHistoryCmd.Flags().IntVar(&fastHistoryN, "limit", 5, "Number of fasts to show (0 for all)")
}
