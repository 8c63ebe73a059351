package cmd

import (
	"fmt"

	"article-planner/app/cli/api"
	"article-planner/app/cli/term"
	shared "article-planner/app/shared"

	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Mark an article as published",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setStatus(args[0], shared.ArticleStatusPublished)
	},
}

var unpublishCmd = &cobra.Command{
	Use:   "unpublish <id>",
	Short: "Move an article back to draft",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setStatus(args[0], shared.ArticleStatusDraft)
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
	RootCmd.AddCommand(unpublishCmd)
}

func setStatus(arg string, status shared.ArticleStatus) {
	id := mustParseArticleId(arg)

	term.StartSpinner("Updating status")
	article, apiErr := api.Client.UpdateArticleStatus(id, status)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiErrorAndExit("Error updating status", apiErr)
	}

	fmt.Printf("✅ %s is now %s\n", articleLabel(article), term.StatusLabel(article.Status))
}
