package main

import (
	"github.com/spf13/cobra"

	"github.com/Aashish23092/curriculum-ats/config"
	"github.com/Aashish23092/curriculum-ats/logger"
)

const (
	app = "curriculum"
)

var (
	// Used for flags.
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "curriculum extracts structured profiles from résumé files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is defaults plus environment)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
}

// loadConfig reads the shared service configuration and sets up logging for
// the command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	cfg.Log.Format = "pretty"
	logger.InitWithWriter(cfg.Log, rootCmd.ErrOrStderr())
	return cfg, nil
}
