package cmd

import (
	"fmt"

	"article-planner/app/cli/api"
	"article-planner/app/cli/term"
	shared "article-planner/app/shared"

	"github.com/spf13/cobra"
)

var showPlain bool

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"s"},
	Short:   "Show an article brief",
	Args:    cobra.ExactArgs(1),
	Run:     show,
}

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print wrapped plain text instead of rendered markdown")
}

func show(cmd *cobra.Command, args []string) {
	id := mustParseArticleId(args[0])

	term.StartSpinner("Loading brief")
	brief, apiErr := api.Client.ExportArticle(id, shared.ExportFormatMarkdown)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiErrorAndExit("Error loading article", apiErr)
	}

	if showPlain {
		fmt.Println(term.GetPlain(brief))
		return
	}

	rendered, err := term.GetMarkdown(brief)
	if err != nil {
		term.OutputErrorAndExit("Error rendering brief: %v", err)
	}

	fmt.Print(rendered)
	term.PrintCmds("", "edit", "export", "publish")
}
