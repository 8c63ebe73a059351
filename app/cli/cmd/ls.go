package cmd

import (
	"fmt"
	"os"
	"strconv"

	"article-planner/app/cli/api"
	"article-planner/app/cli/term"
	shared "article-planner/app/shared"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listStatus string
var listSearch string

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"articles"},
	Short:   "List articles, newest first",
	Args:    cobra.NoArgs,
	Run:     listArticles,
}

func init() {
	RootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVar(&listStatus, "status", "", "Only show articles with this status (draft or published)")
	lsCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show articles whose H1 or query contains this text")
}

func listArticles(cmd *cobra.Command, args []string) {
	status := shared.ArticleStatus(listStatus)
	if status != "" && !status.Valid() {
		term.OutputErrorAndExit("Invalid status %q: expected draft or published", listStatus)
	}

	term.StartSpinner("Loading articles")
	articles, apiErr := api.Client.ListArticles(shared.ListArticlesParams{
		Status: status,
		Search: listSearch,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiErrorAndExit("Error listing articles", apiErr)
	}

	if len(articles) == 0 {
		fmt.Println("🤷‍♂️ No articles")
		fmt.Println()
		term.PrintCmds("", "new")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "H1", "Query", "Status", "Sections", "Enriched", "Updated"})
	table.SetAutoWrapText(false)

	for _, article := range articles {
		row := []string{
			strconv.FormatInt(article.Id, 10),
			shared.Truncate(article.H1, 50),
			shared.Truncate(article.Query, 30),
			term.StatusLabel(article.Status),
			strconv.Itoa(len(article.Sections)),
			fmt.Sprintf("%d/%d", enrichedCount(article), len(article.Sections)),
			humanize.Time(article.UpdatedAt),
		}
		table.Rich(row, []tablewriter.Colors{
			{tablewriter.Bold},
			{tablewriter.FgHiGreenColor, tablewriter.Bold},
		})
	}

	table.Render()

	fmt.Println()
	term.PrintCmds("", "show", "edit", "new", "rm")
}
