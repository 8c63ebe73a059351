package cmd

import (
	"strings"

	"article-planner/app/cli/api"
	"article-planner/app/cli/outline_tui"
	"article-planner/app/cli/term"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:     "new [query]",
	Aliases: []string{"n"},
	Short:   "Generate an outline from a search query and edit it",
	Long:    `Generate an outline from a search query, edit it, then enrich each section with researched information. Without a query the editor asks for one.`,
	Run:     newArticle,
}

func init() {
	RootCmd.AddCommand(newCmd)
}

func newArticle(cmd *cobra.Command, args []string) {
	query := strings.TrimSpace(strings.Join(args, " "))

	res, err := outline_tui.StartNew(api.Client, query)
	if err != nil {
		term.OutputErrorAndExit("%v", err)
	}

	printEditorResult(res)
}
