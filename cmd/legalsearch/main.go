// Package main is the legalsearch CLI: it runs the multi-source decision
// search from a terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "legalsearch",
	Short: "Search Turkish court decisions from the command line",
	Long: `legalsearch queries Yargıtay, Danıştay, the Constitutional Court and the
Competition Authority in parallel and prints the merged decisions. When no
source returns anything and a Gemini key is configured, AI-generated
summaries are shown instead, clearly flagged as unverified.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./legalsearch.yaml or ~/.config/legalsearch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("legalsearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "legalsearch"))
		}
	}

	viper.SetEnvPrefix("JUSTLAW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
