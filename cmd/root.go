/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "outage-gin",
	Short: "Outage request API server",
	Long: `Outage Gin is a REST API server for planned power-outage request management.
It provides bulk spreadsheet import with per-row validation, a reviewable
pending batch with atomic submission, and urgency classification for display.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
