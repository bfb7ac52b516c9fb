package wellflow

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leomerlubo/wellflow/internal/service"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local wellflow database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *service.App) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized wellflow database at %s\n", path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
