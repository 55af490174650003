package main

import (
	"fmt"

	"justlaw-backend/models"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the decision sources that can be searched",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, tag := range models.AllSources {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", tag, tag.DisplayName())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
