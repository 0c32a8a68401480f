package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cipherlab/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cipherlab",
	Short: "Watch classical and modern ciphers work, one step at a time",
	Long: `cipherlab animates encryption and decryption unit by unit, with a lesson
for every cipher and a guided tour for first-time visitors. It runs as a
web playground, a terminal UI, or plain one-shot commands.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
