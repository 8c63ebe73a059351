package cmd

import (
	"fmt"

	"article-planner/app/cli/api"
	"article-planner/app/cli/term"
	shared "article-planner/app/shared"

	"github.com/spf13/cobra"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:     "rm [ids...]",
	Aliases: []string{"delete"},
	Short:   "Delete articles",
	Long:    `Delete articles by id. Without ids, pick them from a list.`,
	Run:     rm,
}

func init() {
	RootCmd.AddCommand(rmCmd)
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Skip the confirmation prompt")
}

func rm(cmd *cobra.Command, args []string) {
	var ids []int64

	if len(args) > 0 {
		for _, arg := range args {
			ids = append(ids, mustParseArticleId(arg))
		}
	} else {
		ids = selectArticles()
	}

	if len(ids) == 0 {
		fmt.Println("🤷‍♂️ No articles selected")
		return
	}

	if !rmYes {
		confirmed, err := term.ConfirmYesNo("Delete %d article(s)? This can't be undone.", len(ids))
		if err != nil {
			term.OutputErrorAndExit("Error confirming: %v", err)
		}
		if !confirmed {
			fmt.Println("🤷‍♂️ Nothing deleted")
			return
		}
	}

	term.StartSpinner("Deleting")
	apiErr := api.Client.DeleteArticles(ids)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiErrorAndExit("Error deleting articles", apiErr)
	}

	fmt.Printf("✅ Deleted %d article(s)\n", len(ids))
}

func selectArticles() []int64 {
	term.StartSpinner("Loading articles")
	articles, apiErr := api.Client.ListArticles(shared.ListArticlesParams{})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiErrorAndExit("Error listing articles", apiErr)
	}

	if len(articles) == 0 {
		return nil
	}

	var opts []string
	for _, article := range articles {
		opts = append(opts, articleLabel(article))
	}

	selected, err := term.SelectManyFromList("Select articles to delete:", opts)
	if err != nil {
		term.OutputErrorAndExit("Error selecting articles: %v", err)
	}

	var ids []int64
	for _, i := range selected {
		ids = append(ids, articles[i].Id)
	}
	return ids
}
