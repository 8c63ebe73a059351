package cmd

import (
	"fmt"

	"article-planner/app/cli/api"
	"article-planner/app/cli/editor"
	"article-planner/app/cli/outline_tui"
	"article-planner/app/cli/term"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	Aliases: []string{"e"},
	Short:   "Edit an article's outline or enrichment",
	Args:    cobra.ExactArgs(1),
	Run:     edit,
}

func init() {
	RootCmd.AddCommand(editCmd)
}

func edit(cmd *cobra.Command, args []string) {
	article := mustGetArticle(mustParseArticleId(args[0]))

	res, err := outline_tui.StartEdit(api.Client, article)
	if err != nil {
		term.OutputErrorAndExit("%v", err)
	}

	printEditorResult(res)
}

func printEditorResult(res *outline_tui.Result) {
	if !res.HasArticle {
		fmt.Println("🤷‍♂️ No article created")
		return
	}

	if res.Dirty {
		color.New(term.ColorHiYellow, color.Bold).Printf("⚠️  Unsaved changes to article #%d were discarded\n", res.ArticleId)
	} else {
		color.New(term.ColorHiGreen, color.Bold).Printf("✅ Article #%d saved\n", res.ArticleId)
	}

	switch res.State {
	case editor.StateEnrichmentReview:
		fmt.Println("Every section has been sent for enrichment.")
	case editor.StateOutlineEditing:
		fmt.Println("The outline isn't enriched yet.")
	}

	fmt.Println()
	term.PrintCmds("", "show", "edit", "export", "publish")
}
