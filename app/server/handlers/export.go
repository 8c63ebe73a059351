package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"

	"article-planner/app/server/db"
	shared "article-planner/app/shared"

	"github.com/yuin/goldmark"
)

func ExportArticleHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ExportArticleHandler")

	id, ok := articleIdFromVars(w, r)
	if !ok {
		return
	}

	format := shared.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = shared.ExportFormatMarkdown
	}
	if format != shared.ExportFormatMarkdown && format != shared.ExportFormatHtml {
		writeInvalidRequest(w, fmt.Sprintf("Unsupported format %q", format))
		return
	}

	article, err := db.GetArticle(r.Context(), id)
	if err != nil {
		writeServerError(w, "Error getting article", err)
		return
	}

	if article == nil {
		writeNotFound(w, fmt.Sprintf("Article %d not found", id))
		return
	}

	md := RenderBrief(article)

	if format == shared.ExportFormatMarkdown {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		writeServerError(w, "Error rendering html", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// RenderBrief writes the outline as a Markdown writing brief: metadata up
// top, then each heading followed by its enrichment text.
func RenderBrief(article *shared.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", article.H1)
	fmt.Fprintf(&b, "- **Query:** %s\n", article.Query)
	fmt.Fprintf(&b, "- **Meta title:** %s\n", article.MetaTitle)
	fmt.Fprintf(&b, "- **Meta description:** %s\n", article.MetaDesc)

	for _, s := range article.Sections {
		prefix := "##"
		if s.Level == shared.HeadingLevelMinor {
			prefix = "###"
		}
		fmt.Fprintf(&b, "\n%s %s\n", prefix, s.Title)

		if s.HasSourceInformation() {
			fmt.Fprintf(&b, "\n%s\n", strings.TrimSpace(*s.SourceInformation))
		}
	}

	return b.String()
}
