package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "vanity-eth",
	Short:   "Search for Ethereum addresses matching a prefix, suffix, pattern, or leading-zero condition",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file layered under flag values")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "raise log level to debug")

	rootCmd.AddCommand(searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
