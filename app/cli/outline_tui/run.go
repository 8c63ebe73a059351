package outline_tui

import (
	"context"
	"fmt"

	"article-planner/app/cli/editor"
	"article-planner/app/cli/types"
	shared "article-planner/app/shared"

	tea "github.com/charmbracelet/bubbletea"
)

var program *tea.Program

type Result struct {
	ArticleId  int64
	HasArticle bool
	State      string
	// Dirty is set when the user quit without saving their last edits
	Dirty bool
}

// StartNew runs the editor from query entry. A non-empty query is submitted
// right away.
func StartNew(client types.ApiClient, query string) (*Result, error) {
	ed := editor.New(client, editor.Options{OnChange: sendEditorChanged})
	return start(ed, query)
}

// StartEdit opens an existing article.
func StartEdit(client types.ApiClient, article *shared.Article) (*Result, error) {
	ed := editor.Open(client, article, editor.Options{OnChange: sendEditorChanged})
	return start(ed, "")
}

func start(ed *editor.Editor, query string) (*Result, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial := initialModel(ctx, ed, query)

	program = tea.NewProgram(initial, tea.WithAltScreen())

	_, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("error running outline UI: %v", err)
	}

	res := &Result{
		State: ed.State(),
		Dirty: ed.Dirty(),
	}
	res.ArticleId, res.HasArticle = ed.ArticleId()

	return res, nil
}

func sendEditorChanged() {
	if program != nil {
		program.Send(editorChangedMsg{})
	}
}
