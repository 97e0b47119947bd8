package main

import (
	"github.com/spf13/cobra"

	"github.com/darriusnjh/KIRKIFY/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "kirkify",
		Short:         "Hand-gesture games driven by your webcam",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(&configFlag))
	rootCmd.AddCommand(newDiagnoseCommand(&configFlag))
	rootCmd.AddCommand(newScoresCommand(&configFlag))

	return rootCmd
}

// loadConfig resolves the config path flag and loads the configuration.
func loadConfig(configFlag string) (config.Config, error) {
	path := configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}
