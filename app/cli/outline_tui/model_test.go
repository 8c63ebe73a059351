package outline_tui

import (
	"context"
	"testing"
	"time"

	"article-planner/app/cli/editor"
	shared "article-planner/app/shared"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return true }

// stillClock never fires, so autosave stays pending for the whole test.
type stillClock struct{}

func (stillClock) Now() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func (stillClock) AfterFunc(d time.Duration, f func()) editor.Timer { return stoppedTimer{} }

type stubClient struct {
	saves int
}

func (c *stubClient) Health() *shared.ApiError { return nil }

func (c *stubClient) ListArticles(params shared.ListArticlesParams) ([]*shared.Article, *shared.ApiError) {
	return nil, nil
}

func (c *stubClient) GetArticle(id int64) (*shared.Article, *shared.ApiError) { return nil, nil }

func (c *stubClient) UpdateArticleStatus(id int64, status shared.ArticleStatus) (*shared.Article, *shared.ApiError) {
	return nil, nil
}

func (c *stubClient) ExportArticle(id int64, format shared.ExportFormat) (string, *shared.ApiError) {
	return "", nil
}

func (c *stubClient) DeleteArticles(ids []int64) *shared.ApiError { return nil }

func (c *stubClient) GeneratePlan(ctx context.Context, query string) (*shared.GeneratePlanResponse, *shared.ApiError) {
	return &shared.GeneratePlanResponse{
		H1:        "Trail Shoes",
		MetaTitle: "Trail Shoes Guide",
		MetaDesc:  "Pick the right pair.",
		Sections: []*shared.OutlineSection{
			{Title: "Grip", Level: shared.HeadingLevelMajor},
			{Title: "Lugs", Level: shared.HeadingLevelMinor},
			{Title: "Fit", Level: shared.HeadingLevelMajor},
		},
	}, nil
}

func (c *stubClient) SavePlan(ctx context.Context, req shared.SavePlanRequest) (*shared.Article, *shared.ApiError) {
	c.saves++
	return &shared.Article{Id: 5, Query: req.Query, H1: req.H1, Sections: req.Sections}, nil
}

func (c *stubClient) SaveDraft(ctx context.Context, id int64, req shared.SaveDraftRequest) (*shared.Article, *shared.ApiError) {
	return nil, nil
}

func (c *stubClient) SearchSectionInfo(ctx context.Context, req shared.SearchSectionInfoRequest) (*shared.SearchSectionInfoResponse, *shared.ApiError) {
	return &shared.SearchSectionInfoResponse{SourceInformation: "Facts about " + req.Section.Title}, nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (outlineUIModel, *editor.Editor, *stubClient) {
	t.Helper()

	client := &stubClient{}
	ed := editor.New(client, editor.Options{Clock: stillClock{}})
	m := *initialModel(context.Background(), ed, "")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(outlineUIModel), ed, client
}

// finishAction runs the request started by cmd and feeds its result back.
func finishAction(t *testing.T, m outlineUIModel, cmd tea.Cmd) outlineUIModel {
	t.Helper()

	done, ok := findActionDone(cmd)
	require.True(t, ok, "no action in command")

	next, _ := m.Update(done)
	return next.(outlineUIModel)
}

func findActionDone(cmd tea.Cmd) (actionDoneMsg, bool) {
	if cmd == nil {
		return actionDoneMsg{}, false
	}

	switch msg := cmd().(type) {
	case actionDoneMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if done, ok := findActionDone(c); ok {
				return done, true
			}
		}
	}
	return actionDoneMsg{}, false
}

func press(m outlineUIModel, keys ...tea.KeyMsg) (outlineUIModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(outlineUIModel)
	}
	return m, cmd
}

func submitted(t *testing.T) (outlineUIModel, *editor.Editor, *stubClient) {
	t.Helper()

	m, ed, client := newTestModel(t)
	m, _ = press(m, keyRunes("trail shoes"))
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, actionSubmit, m.pending)

	m = finishAction(t, m, cmd)
	require.Equal(t, editor.StateOutlineEditing, ed.State())

	return m, ed, client
}

func TestSubmitQuery(t *testing.T) {
	m, ed, client := submitted(t)

	assert.Empty(t, m.pending)
	assert.Equal(t, "trail shoes", ed.Query())
	assert.Equal(t, 1, client.saves)
	assert.Contains(t, m.View(), "Grip")
}

func TestKeysIgnoredWhileRequestInFlight(t *testing.T) {
	m, ed, _ := newTestModel(t)
	m, _ = press(m, keyRunes("trail shoes"))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := press(m, keyRunes("q"))
	assert.Nil(t, cmd)
	assert.False(t, m.quitting)
	assert.Equal(t, editor.StateQueryEntry, ed.State())
}

func TestOutlineKeys(t *testing.T) {
	m, ed, _ := submitted(t)

	// down past the three metadata rows onto the first section
	m, _ = press(m, keyRunes("j"), keyRunes("j"), keyRunes("j"))
	assert.Equal(t, 3, m.cursor)

	m, _ = press(m, keyRunes("J"))
	assert.Equal(t, 4, m.cursor)
	assert.Equal(t, "Grip", ed.Outline().Sections[1].Title)

	m, _ = press(m, keyRunes("t"))
	assert.Equal(t, shared.HeadingLevelMinor, ed.Outline().Sections[1].Level)

	m, _ = press(m, keyRunes("x"))
	assert.Len(t, ed.Outline().Sections, 2)

	m, _ = press(m, keyRunes("A"))
	sections := ed.Outline().Sections
	require.Len(t, sections, 3)
	assert.Equal(t, editor.PlaceholderMinorTitle, sections[2].Title)
	assert.Equal(t, 5, m.cursor)
	assert.True(t, ed.Dirty())
}

func TestEditField(t *testing.T) {
	m, ed, _ := submitted(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.editing)

	m, _ = press(m, keyRunes(" 2025"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	assert.Equal(t, "Trail Shoes 2025", ed.Outline().H1)
	assert.True(t, ed.Dirty())
}

func TestQuitWithUnsavedChangesAsksFirst(t *testing.T) {
	m, ed, client := submitted(t)
	require.NoError(t, ed.SetField(editor.FieldH1, "Changed"))

	m, cmd := press(m, keyRunes("q"))
	assert.True(t, m.confirmingQuit)
	assert.Nil(t, cmd)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.confirmingQuit)

	m, _ = press(m, keyRunes("q"))
	m, cmd = press(m, keyRunes("s"))
	assert.True(t, m.quitAfterFlush)

	done, ok := findActionDone(cmd)
	require.True(t, ok)
	next, cmd := m.Update(done)
	m = next.(outlineUIModel)

	assert.True(t, m.quitting)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 2, client.saves)
	assert.False(t, ed.Dirty())
}

func TestQuitWhenSavedExitsRightAway(t *testing.T) {
	m, _, _ := submitted(t)

	m, cmd := press(m, keyRunes("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestAdvanceToReview(t *testing.T) {
	m, ed, _ := submitted(t)

	m, cmd := press(m, keyRunes("n"))
	assert.Equal(t, actionAdvance, m.pending)
	m = finishAction(t, m, cmd)

	assert.Equal(t, editor.StateEnrichmentReview, ed.State())
	assert.Contains(t, m.View(), "Facts about Lugs")

	m, _ = press(m, keyRunes("b"))
	assert.Equal(t, editor.StateOutlineEditing, ed.State())
}
