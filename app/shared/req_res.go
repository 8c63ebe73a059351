package shared

type GeneratePlanRequest struct {
	Query string `json:"query"`
}

type OutlineSection struct {
	Title string       `json:"title"`
	Level HeadingLevel `json:"level"`
}

type GeneratePlanResponse struct {
	H1        string            `json:"h1"`
	MetaTitle string            `json:"meta_title"`
	MetaDesc  string            `json:"meta_desc"`
	Sections  []*OutlineSection `json:"sections"`
}

// SavePlanRequest creates an article when Id is nil and otherwise replaces
// the article's metadata and sections wholesale.
type SavePlanRequest struct {
	Id        *int64     `json:"id,omitempty"`
	Query     string     `json:"query"`
	H1        string     `json:"h1"`
	MetaTitle string     `json:"meta_title"`
	MetaDesc  string     `json:"meta_desc"`
	Sections  []*Section `json:"sections"`
}

type SaveDraftRequest struct {
	Id        *int64     `json:"id,omitempty"`
	H1        string     `json:"h1"`
	MetaTitle string     `json:"meta_title"`
	MetaDesc  string     `json:"meta_desc"`
	Sections  []*Section `json:"sections"`
}

type SearchSectionInfoRequest struct {
	H1            string   `json:"h1"`
	Section       *Section `json:"section"`
	ParentSection *Section `json:"parent_section,omitempty"`
}

type SearchSectionInfoResponse struct {
	SourceInformation string `json:"source_information"`
}

type DeleteArticlesRequest struct {
	Ids []int64 `json:"ids"`
}

type UpdateArticleStatusRequest struct {
	Status ArticleStatus `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ListArticlesParams struct {
	Status ArticleStatus
	Search string
}

type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatHtml     ExportFormat = "html"
)
