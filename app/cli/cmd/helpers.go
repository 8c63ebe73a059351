package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"article-planner/app/cli/api"
	"article-planner/app/cli/term"
	shared "article-planner/app/shared"
)

func parseArticleId(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid article id %q", arg)
	}
	return id, nil
}

func mustParseArticleId(arg string) int64 {
	id, err := parseArticleId(arg)
	if err != nil {
		term.OutputErrorAndExit("%v", err)
	}
	return id
}

func mustGetArticle(id int64) *shared.Article {
	term.StartSpinner("Loading article")
	article, apiErr := api.Client.GetArticle(id)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputApiErrorAndExit("Error loading article", apiErr)
	}

	return article
}

// enrichedCount counts sections that have enrichment text.
func enrichedCount(article *shared.Article) int {
	n := 0
	for _, s := range article.Sections {
		if s.HasSourceInformation() {
			n++
		}
	}
	return n
}

func articleLabel(article *shared.Article) string {
	title := article.H1
	if title == "" {
		title = article.Query
	}
	return fmt.Sprintf("#%d %s", article.Id, shared.Truncate(title, 60))
}
