package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	shared "article-planner/app/shared"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, ConnectUrl("sqlite://"+path))
	require.NoError(t, MigrationsUp())

	t.Cleanup(func() {
		Close()
	})
}

func testSections() []SectionFields {
	return []SectionFields{
		{Title: "What is sourdough", Level: "h2"},
		{Title: "Starter basics", Level: "h3", SourceInformation: shared.StrPtr("Flour and water.")},
		{Title: "Baking day", Level: "h2"},
	}
}

func TestCreateAndGetArticle(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	created, err := CreateArticle(ctx, ArticleFields{
		Query:     "sourdough bread",
		H1:        "Sourdough Bread Guide",
		MetaTitle: "Sourdough Guide",
		MetaDesc:  "Everything about sourdough.",
	}, testSections())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotZero(t, created.Id)
	assert.Equal(t, shared.ArticleStatusDraft, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	article, err := GetArticle(ctx, created.Id)
	require.NoError(t, err)
	require.NotNil(t, article)

	assert.Equal(t, "sourdough bread", article.Query)
	assert.Equal(t, "Sourdough Guide", article.MetaTitle)
	require.Len(t, article.Sections, 3)

	for i, s := range article.Sections {
		assert.Equal(t, i, s.Position)
		assert.Equal(t, created.Id, s.ArticleId)
	}
	assert.Equal(t, shared.HeadingLevelMinor, article.Sections[1].Level)
	require.NotNil(t, article.Sections[1].SourceInformation)
	assert.Equal(t, "Flour and water.", *article.Sections[1].SourceInformation)
	assert.Nil(t, article.Sections[0].SourceInformation)
}

func TestGetArticleMissing(t *testing.T) {
	setupTestDB(t)

	article, err := GetArticle(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, article)
}

func TestUpsertArticleReplacesSections(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	created, err := CreateArticle(ctx, ArticleFields{Query: "q", H1: "Old"}, testSections())
	require.NoError(t, err)

	updated, err := UpsertArticle(ctx, &created.Id, ArticleFields{H1: "New", MetaTitle: "T", MetaDesc: "D"}, []SectionFields{
		{Title: "Only section", Level: "h2"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "New", updated.H1)
	// empty query keeps the stored one
	assert.Equal(t, "q", updated.Query)
	require.Len(t, updated.Sections, 1)
	assert.Equal(t, "Only section", updated.Sections[0].Title)
	assert.Equal(t, 0, updated.Sections[0].Position)
}

func TestUpsertArticleCreatesWhenMissing(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	missing := int64(999)
	article, err := UpsertArticle(ctx, &missing, ArticleFields{Query: "q", H1: "H"}, testSections())
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.NotEqual(t, missing, article.Id)
	assert.Len(t, article.Sections, 3)
}

func TestUpdateArticleDraft(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	created, err := CreateArticle(ctx, ArticleFields{Query: "coffee", H1: "Coffee"}, testSections())
	require.NoError(t, err)

	sections := testSections()
	sections[0], sections[2] = sections[2], sections[0]

	updated, err := UpdateArticleDraft(ctx, created.Id, ArticleFields{Query: "ignored", H1: "Coffee 2"}, sections)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "coffee", updated.Query)
	assert.Equal(t, "Coffee 2", updated.H1)
	assert.Equal(t, "Baking day", updated.Sections[0].Title)

	missing, err := UpdateArticleDraft(ctx, created.Id+100, ArticleFields{}, nil)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListArticlesFilters(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	first, err := CreateArticle(ctx, ArticleFields{Query: "espresso machines", H1: "Best Espresso Machines"}, nil)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := CreateArticle(ctx, ArticleFields{Query: "tea", H1: "Green Tea Guide"}, testSections())
	require.NoError(t, err)

	_, err = UpdateArticleStatus(ctx, first.Id, shared.ArticleStatusPublished)
	require.NoError(t, err)

	all, err := ListArticles(ctx, shared.ListArticlesParams{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.Id, all[0].Id, "newest first")
	assert.Len(t, all[0].Sections, 3)
	assert.Empty(t, all[1].Sections)

	published, err := ListArticles(ctx, shared.ListArticlesParams{Status: shared.ArticleStatusPublished})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, first.Id, published[0].Id)

	search, err := ListArticles(ctx, shared.ListArticlesParams{Search: "GREEN"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, second.Id, search[0].Id)

	byQuery, err := ListArticles(ctx, shared.ListArticlesParams{Search: "espresso"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)

	none, err := ListArticles(ctx, shared.ListArticlesParams{Search: "nothing matches"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateArticleStatusMissing(t *testing.T) {
	setupTestDB(t)

	article, err := UpdateArticleStatus(context.Background(), 12, shared.ArticleStatusPublished)
	assert.NoError(t, err)
	assert.Nil(t, article)
}

func TestDeleteArticles(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	a, err := CreateArticle(ctx, ArticleFields{Query: "a", H1: "A"}, testSections())
	require.NoError(t, err)
	b, err := CreateArticle(ctx, ArticleFields{Query: "b", H1: "B"}, testSections())
	require.NoError(t, err)
	c, err := CreateArticle(ctx, ArticleFields{Query: "c", H1: "C"}, testSections())
	require.NoError(t, err)

	require.NoError(t, DeleteArticles(ctx, []int64{a.Id, c.Id, 12345}))

	remaining, err := ListArticles(ctx, shared.ListArticlesParams{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, b.Id, remaining[0].Id)

	var orphaned int
	require.NoError(t, Conn.Get(&orphaned, Conn.Rebind("SELECT COUNT(*) FROM sections WHERE article_id IN (?, ?)"), a.Id, c.Id))
	assert.Zero(t, orphaned)

	assert.NoError(t, DeleteArticles(ctx, nil))
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	err := func() error {
		return WithTx(ctx, "panicking", func(tx *sqlx.Tx) error {
			_, err := insertArticle(ctx, tx, ArticleFields{Query: "x", H1: "X"})
			require.NoError(t, err)
			panic("boom")
		})
	}()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	all, err := ListArticles(ctx, shared.ListArticlesParams{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSectionFieldsFromApi(t *testing.T) {
	fields := SectionFieldsFromApi([]*shared.Section{
		{Title: "c", Level: shared.HeadingLevelMajor, Position: 5},
		nil,
		{Title: "a", Level: shared.HeadingLevelMajor, Position: 0},
		{Title: "b", Level: shared.HeadingLevelMinor, Position: 0},
	})

	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Title)
	assert.Equal(t, "b", fields[1].Title)
	assert.Equal(t, "c", fields[2].Title)
	assert.Equal(t, "h3", fields[1].Level)
}
