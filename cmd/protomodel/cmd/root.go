package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carlosnayan/protomodel"
	"github.com/carlosnayan/protomodel/internal/logger"
)

var logLevels []string

var rootCmd = &cobra.Command{
	Use:     "protomodel",
	Short:   "Compile protobuf schemas into typed Go models with codecs",
	Long: `protomodel compiles a .proto schema into a typed Go data model, a
bidirectional codec between the model and the protoc wire bindings, and
a property-based round-trip test module.`,
	Version:       protomodel.Version,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if len(logLevels) > 0 {
			logger.SetLogLevels(logLevels)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the protomodel version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("protomodel %s\n", protomodel.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&logLevels, "log", nil, "enabled log levels (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
