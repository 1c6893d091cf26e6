package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "yefe-console",
	Short:         "Yefe console serves the marketing site and the admin dashboard.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, checkAPICmd, checkLoginCmd)
}
