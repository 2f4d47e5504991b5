package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pageforge/infrastructure/config"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List configured sites with their enabled status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := config.NewResolver(configRoot)
		sites, err := resolver.Sites()
		if err != nil {
			return err
		}
		if len(sites) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no sites configured")
			return nil
		}

		for _, site := range sites {
			status := resolver.IsEnabled(site, environment)
			if status.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), site)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(disabled: %s)\n", site, status.Reason)
			}
		}
		return nil
	},
}
