package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	shared "article-planner/app/shared"
)

func (a *Api) Health() *shared.ApiError {
	return a.do(context.Background(), fastClient, http.MethodGet, "/health", nil, nil)
}

func (a *Api) ListArticles(params shared.ListArticlesParams) ([]*shared.Article, *shared.ApiError) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	path := "/articles"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var articles []*shared.Article
	apiErr := a.do(context.Background(), fastClient, http.MethodGet, path, nil, &articles)
	if apiErr != nil {
		return nil, apiErr
	}

	return articles, nil
}

func (a *Api) GetArticle(id int64) (*shared.Article, *shared.ApiError) {
	var article shared.Article
	apiErr := a.do(context.Background(), fastClient, http.MethodGet, fmt.Sprintf("/article/%d", id), nil, &article)
	if apiErr != nil {
		return nil, apiErr
	}

	return &article, nil
}

func (a *Api) UpdateArticleStatus(id int64, status shared.ArticleStatus) (*shared.Article, *shared.ApiError) {
	var article shared.Article
	apiErr := a.do(context.Background(), fastClient, http.MethodPatch, fmt.Sprintf("/article/%d/status", id), shared.UpdateArticleStatusRequest{Status: status}, &article)
	if apiErr != nil {
		return nil, apiErr
	}

	return &article, nil
}

func (a *Api) ExportArticle(id int64, format shared.ExportFormat) (string, *shared.ApiError) {
	path := fmt.Sprintf("/article/%d/export?format=%s", id, url.QueryEscape(string(format)))

	body, apiErr := a.doRaw(context.Background(), fastClient, http.MethodGet, path, nil)
	if apiErr != nil {
		return "", apiErr
	}

	return string(body), nil
}

func (a *Api) DeleteArticles(ids []int64) *shared.ApiError {
	if ids == nil {
		ids = []int64{}
	}
	return a.do(context.Background(), fastClient, http.MethodDelete, "/delete-articles", shared.DeleteArticlesRequest{Ids: ids}, nil)
}

func (a *Api) GeneratePlan(ctx context.Context, query string) (*shared.GeneratePlanResponse, *shared.ApiError) {
	var res shared.GeneratePlanResponse
	apiErr := a.do(ctx, slowClient, http.MethodPost, "/generate-plan", shared.GeneratePlanRequest{Query: query}, &res)
	if apiErr != nil {
		return nil, apiErr
	}

	return &res, nil
}

func (a *Api) SavePlan(ctx context.Context, req shared.SavePlanRequest) (*shared.Article, *shared.ApiError) {
	var article shared.Article
	apiErr := a.do(ctx, fastClient, http.MethodPost, "/save-plan", req, &article)
	if apiErr != nil {
		return nil, apiErr
	}

	return &article, nil
}

func (a *Api) SaveDraft(ctx context.Context, id int64, req shared.SaveDraftRequest) (*shared.Article, *shared.ApiError) {
	var article shared.Article
	apiErr := a.do(ctx, fastClient, http.MethodPut, fmt.Sprintf("/save-draft?id=%d", id), req, &article)
	if apiErr != nil {
		return nil, apiErr
	}

	return &article, nil
}

func (a *Api) SearchSectionInfo(ctx context.Context, req shared.SearchSectionInfoRequest) (*shared.SearchSectionInfoResponse, *shared.ApiError) {
	var res shared.SearchSectionInfoResponse
	apiErr := a.do(ctx, slowClient, http.MethodPost, "/search-section-info", req, &res)
	if apiErr != nil {
		return nil, apiErr
	}

	return &res, nil
}

// do sends reqBody as JSON (when non-nil) and decodes the response into
// respBody (when non-nil).
func (a *Api) do(ctx context.Context, client *http.Client, method, path string, reqBody, respBody interface{}) *shared.ApiError {
	body, apiErr := a.doRaw(ctx, client, method, path, reqBody)
	if apiErr != nil {
		return apiErr
	}

	if respBody == nil {
		return nil
	}

	err := json.Unmarshal(body, respBody)
	if err != nil {
		return otherErr("error decoding response: %v", err)
	}

	return nil
}

func (a *Api) doRaw(ctx context.Context, client *http.Client, method, path string, reqBody interface{}) ([]byte, *shared.ApiError) {
	if a == nil || a.host == "" {
		return nil, otherErr("api host is not configured")
	}

	var reader io.Reader
	if reqBody != nil {
		reqBytes, err := json.Marshal(reqBody)
		if err != nil {
			return nil, otherErr("error marshalling request: %v", err)
		}
		reader = bytes.NewReader(reqBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.host+path, reader)
	if err != nil {
		return nil, otherErr("error creating request: %v", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, otherErr("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, HandleApiError(resp, errorBody)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, otherErr("error reading response: %v", err)
	}

	return body, nil
}
