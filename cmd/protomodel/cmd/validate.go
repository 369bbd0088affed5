package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carlosnayan/protomodel/internal/config"
	"github.com/carlosnayan/protomodel/internal/generator"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate [schema]",
	Short: "Check that a schema compiles without writing anything",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var schemaPath string
		if len(args) == 1 {
			schemaPath = args[0]
		} else {
			cfg, err := config.Load(validateConfigPath)
			if err != nil {
				return err
			}
			schemaPath = cfg.Schema
		}

		externals, err := generator.Validate(schemaPath)
		if err != nil {
			return err
		}
		for _, external := range externals {
			fmt.Fprintf(cmd.OutOrStdout(), "warning: unresolved reference %s\n", external)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: schema OK\n", schemaPath)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "", "path to protomodel.conf")
	rootCmd.AddCommand(validateCmd)
}
