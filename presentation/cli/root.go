// Package cli is the configuration-resolution entrypoint: it resolves and
// prints site configurations and lists the sites a config tree declares.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pageforge/infrastructure/config"
)

var (
	configRoot  string
	environment string
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}

var rootCmd = &cobra.Command{
	Use:           "pageforge",
	Short:         "Resolve and inspect per-site test configuration",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; fall back to the process environment.
		if err := godotenv.Load(); err != nil {
			logger.Debug(".env not found, using process environment")
		}
		if environment == "" {
			environment = os.Getenv("ENV")
		}
		if environment == "" {
			environment = config.DefaultEnvironment
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configRoot, "config-root", ".", "directory holding framework/, sites/ and local.json")
	rootCmd.PersistentFlags().StringVar(&environment, "env", "", "environment layer to apply (defaults to $ENV, then \""+config.DefaultEnvironment+"\")")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(sitesCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// siteArg picks the site from the positional argument or the SITE variable.
func siteArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if site := os.Getenv("SITE"); site != "" {
		return site, nil
	}
	return "", fmt.Errorf("no site given: pass one as an argument or set SITE")
}
