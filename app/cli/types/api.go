package types

import (
	"context"

	shared "article-planner/app/shared"
)

type ApiClient interface {
	Health() *shared.ApiError

	ListArticles(params shared.ListArticlesParams) ([]*shared.Article, *shared.ApiError)
	GetArticle(id int64) (*shared.Article, *shared.ApiError)
	UpdateArticleStatus(id int64, status shared.ArticleStatus) (*shared.Article, *shared.ApiError)
	ExportArticle(id int64, format shared.ExportFormat) (string, *shared.ApiError)
	DeleteArticles(ids []int64) *shared.ApiError

	GeneratePlan(ctx context.Context, query string) (*shared.GeneratePlanResponse, *shared.ApiError)
	SavePlan(ctx context.Context, req shared.SavePlanRequest) (*shared.Article, *shared.ApiError)
	SaveDraft(ctx context.Context, id int64, req shared.SaveDraftRequest) (*shared.Article, *shared.ApiError)
	SearchSectionInfo(ctx context.Context, req shared.SearchSectionInfoRequest) (*shared.SearchSectionInfoResponse, *shared.ApiError)
}
