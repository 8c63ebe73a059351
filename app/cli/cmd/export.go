package cmd

import (
	"fmt"
	"os"

	"article-planner/app/cli/api"
	"article-planner/app/cli/term"
	shared "article-planner/app/shared"

	"github.com/spf13/cobra"
)

var exportHtml bool
var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export an article brief as markdown or html",
	Args:  cobra.ExactArgs(1),
	Run:   export,
}

func init() {
	RootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportHtml, "html", false, "Export html instead of markdown")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to this file instead of stdout")
}

func export(cmd *cobra.Command, args []string) {
	id := mustParseArticleId(args[0])

	format := shared.ExportFormatMarkdown
	if exportHtml {
		format = shared.ExportFormatHtml
	}

	term.StartSpinner("Exporting")
	body, apiErr := api.Client.ExportArticle(id, format)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiErrorAndExit("Error exporting article", apiErr)
	}

	if exportOut == "" {
		fmt.Print(body)
		return
	}

	err := os.WriteFile(exportOut, []byte(body), 0644)
	if err != nil {
		term.OutputErrorAndExit("Error writing %s: %v", exportOut, err)
	}

	fmt.Printf("✅ Exported article #%d to %s\n", id, exportOut)
}
