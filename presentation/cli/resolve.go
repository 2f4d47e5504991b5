package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pageforge/infrastructure/config"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [site]",
	Short: "Resolve the full configuration for a site and print it as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := siteArg(args)
		if err != nil {
			return err
		}

		resolver := config.NewResolver(configRoot)
		cfg, err := resolver.Resolve(site, environment)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
