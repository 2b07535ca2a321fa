package main

import (
	"mktools/cmd/mk/mkyaml"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the interpreted makefile as YAML",
	Long: "Print the default target, the variables (raw values, with their deferred flag)\n" +
		"and the rules with their recipes, as YAML.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(newLogger())
		if err != nil {
			return err
		}
		return mkyaml.Write(cmd.OutOrStdout(), s)
	},
}
