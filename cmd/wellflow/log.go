package wellflow

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/model"
	"github.com/leomerlubo/wellflow/internal/service"
)

var (
	logCalories float64
	logLabel    string
	logActivity string
	logListAll  bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record food and activity calories",
}

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food or activity entry",
}

var logAddFoodCmd = &cobra.Command{
	Use:   "food <name>",
	Short: "Log calories eaten",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := logLabel
		if len(args) == 1 {
			label = args[0]
		}
		return addLog(cmd, service.LogInput{Kind: model.LogKindFood, Label: label, Calories: logCalories})
	},
}

var logAddActivityCmd = &cobra.Command{
	Use:   "activity <type>",
	Short: "Log calories burned",
	Long:  "Log calories burned. Type is one of: " + activityNames() + ".",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		activity := logActivity
		if len(args) == 1 {
			activity = args[0]
		}
		return addLog(cmd, service.LogInput{
			Kind:         model.LogKindActivity,
			Label:        logLabel,
			Calories:     logCalories,
			ActivityType: model.ActivityType(activity),
		})
	},
}

func addLog(cmd *cobra.Command, in service.LogInput) error {
	if !cmd.Flags().Changed("calories") {
		return fmt.Errorf("--calories is required")
	}
	return withApp(cmd, func(a *service.App) error {
		entry, err := a.AddLog(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %s %q (%s) id=%s\n", entry.Kind, entry.Label, formatKcal(entry.Calories), entry.ID)
		return nil
	})
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's entries (or all with --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *service.App) error {
			logs := a.Logs()
			if !logListAll {
				logs = service.TodaysLogs(logs, a.Now())
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tTIME\tKIND\tLABEL\tKCAL")
			for _, e := range logs {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%.0f\n", e.ID, e.OccurredAt.Local().Format("2006-01-02 15:04"), e.Kind, e.Label, e.Calories)
			}
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		return withApp(cmd, func(a *service.App) error {
			removed, err := a.DeleteLog(id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry with id %s\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", id)
			return nil
		})
	},
}

func activityNames() string {
	names := make([]string, 0, len(model.ActivityTypes))
	for _, a := range model.ActivityTypes {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logDeleteCmd)
	logAddCmd.AddCommand(logAddFoodCmd, logAddActivityCmd)

	for _, c := range []*cobra.Command{logAddFoodCmd, logAddActivityCmd} {
		c.Flags().Float64Var(&logCalories, "calories", 0, "Calories (kcal, >= 0)")
		c.Flags().StringVar(&logLabel, "label", "", "Entry label")
	}
	logAddActivityCmd.Flags().StringVar(&logActivity, "type", "", "Activity type")
	logListCmd.Flags().BoolVar(&logListAll, "all", false, "Include entries from every day")
}
