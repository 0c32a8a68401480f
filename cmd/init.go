package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cipherlab/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize cipherlab configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick the landing cipher, animation speed, port and tour behaviour, and writes a .cipherlab.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
