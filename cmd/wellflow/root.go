package wellflow

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/config"
	logpkg "github.com/leomerlubo/wellflow/internal/pkg/log"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wellflow",
	Short: "wellflow tracks calories and fasting from your terminal",
	Long:  "wellflow is a local-first tracker for daily calorie intake, activity burn, and intermittent fasting, budgeted against your BMR.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		level := loaded.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		logger := logpkg.New(cmd.ErrOrStderr(), level, loaded.Log.Format)
		cfg = loaded
		cmd.SetContext(logpkg.Into(cmd.Context(), logger))
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}
