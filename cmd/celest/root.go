package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "celest",
	Short: "Local symbolic wellness engine",
	Long: `celest is a local-first daemon and CLI for daily symbolic wellness
readings: pillar scores, synergy verdicts, compatibility between people,
and weekly alignment trends. All data stays on this machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the celest version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("celest version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(connectionsCmd)
	rootCmd.AddCommand(synastryCmd)
	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
