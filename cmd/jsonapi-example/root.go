package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/log"
)

var cfg *config.Config

// rootCmd represents the base command when called without any sub commands
var rootCmd = &cobra.Command{
	Use:               "jsonapi-example",
	Short:             "An example JSON:API blog server.",
	Long:              `It serves an in-memory blog with articles, people and comments through the JSON:API read endpoints.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to the configuration file; the defaults and JSONAPI_* environment variables are used if empty")
	rootCmd.PersistentFlags().String("log-level", "", "overrides the configured logging level. Possible values: debug3, debug2, debug, info, warning, error, critical")

	rootCmd.AddCommand(serveCmd, getCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if path != "" {
		if cfg, err = config.ReadConfigFile(path); err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	if level != "" {
		cfg.LogLevel = level
	}

	log.Default()
	return log.SetLevel(log.ParseLevel(cfg.LogLevel))
}
