package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	shared "article-planner/app/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListArticlesSendsFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/articles", r.URL.Path)
		assert.Equal(t, "published", r.URL.Query().Get("status"))
		assert.Equal(t, "hiking boots", r.URL.Query().Get("search"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 3, "query": "boots", "h1": "Boots", "status": "published", "sections": []}]`))
	}))
	defer server.Close()

	articles, apiErr := NewApi(server.URL).ListArticles(shared.ListArticlesParams{
		Status: shared.ArticleStatusPublished,
		Search: "hiking boots",
	})
	require.Nil(t, apiErr)
	require.Len(t, articles, 1)
	assert.Equal(t, int64(3), articles[0].Id)
}

func TestSavePlanRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/save-plan", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req shared.SavePlanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Id)
		assert.Equal(t, int64(9), *req.Id)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(shared.Article{Id: *req.Id, H1: req.H1, Sections: req.Sections})
	}))
	defer server.Close()

	id := int64(9)
	article, apiErr := NewApi(server.URL+"/").SavePlan(context.Background(), shared.SavePlanRequest{
		Id:       &id,
		H1:       "Title",
		Sections: []*shared.Section{{Title: "One", Level: shared.HeadingLevelMajor}},
	})
	require.Nil(t, apiErr)
	assert.Equal(t, int64(9), article.Id)
	assert.Len(t, article.Sections, 1)
}

func TestSaveDraftUsesQueryId(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "12", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 12}`))
	}))
	defer server.Close()

	article, apiErr := NewApi(server.URL).SaveDraft(context.Background(), 12, shared.SaveDraftRequest{H1: "x"})
	require.Nil(t, apiErr)
	assert.Equal(t, int64(12), article.Id)
}

func TestApiErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type": "collaborator", "status": 500, "message": "Error searching information", "detail": "rate limited"}`))
	}))
	defer server.Close()

	res, apiErr := NewApi(server.URL).SearchSectionInfo(context.Background(), shared.SearchSectionInfoRequest{H1: "h", Section: &shared.Section{Title: "s"}})
	assert.Nil(t, res)
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeCollaborator, apiErr.Type)
	assert.Equal(t, "rate limited", apiErr.UserMessage())
}

func TestNonJsonErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	apiErr := NewApi(server.URL).DeleteArticles([]int64{1})
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeOther, apiErr.Type)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestDeleteArticlesSendsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []interface{}{}, body["ids"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Articles deleted successfully"}`))
	}))
	defer server.Close()

	assert.Nil(t, NewApi(server.URL).DeleteArticles(nil))
}

func TestExportArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/article/4/export", r.URL.Path)
		assert.Equal(t, "html", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<h1>Boots</h1>"))
	}))
	defer server.Close()

	out, apiErr := NewApi(server.URL).ExportArticle(4, shared.ExportFormatHtml)
	require.Nil(t, apiErr)
	assert.Equal(t, "<h1>Boots</h1>", out)
}

func TestUnconfiguredHost(t *testing.T) {
	apiErr := NewApi("").Health()
	require.NotNil(t, apiErr)
	assert.Contains(t, apiErr.Message, "not configured")
}
