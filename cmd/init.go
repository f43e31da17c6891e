package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ucimeto/ucimeto/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ucimeto configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the catalog connection, audience, and LLM provider, and generates a .ucimeto.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
