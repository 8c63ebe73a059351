package cmd

import (
	"article-planner/app/cli/api"
	"article-planner/app/cli/fs"
	"article-planner/app/cli/term"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   `planner [command] [flags]`,
	Short: "Article planner: SEO outlines from a search query",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		api.Init(fs.ApiHost())
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		term.OutputErrorAndExit("Error executing root command: %v", err)
	}
}
