package db

import (
	"database/sql"
	"sort"
	"time"

	shared "article-planner/app/shared"
)

// The models below are server-side rows. Each has a ToApi() method that
// converts it to the wire model in app/shared.

type Article struct {
	Id        int64     `db:"id"`
	Query     string    `db:"query"`
	H1        string    `db:"h1"`
	MetaTitle string    `db:"meta_title"`
	MetaDesc  string    `db:"meta_desc"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (article *Article) ToApi(sections []*Section) *shared.Article {
	apiSections := make([]*shared.Section, 0, len(sections))
	for _, s := range sections {
		apiSections = append(apiSections, s.ToApi())
	}

	return &shared.Article{
		Id:        article.Id,
		Query:     article.Query,
		H1:        article.H1,
		MetaTitle: article.MetaTitle,
		MetaDesc:  article.MetaDesc,
		Status:    shared.ArticleStatus(article.Status),
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
		Sections:  apiSections,
	}
}

type Section struct {
	Id                int64          `db:"id"`
	ArticleId         int64          `db:"article_id"`
	Title             string         `db:"title"`
	Level             string         `db:"level"`
	Position          int            `db:"position"`
	SourceInformation sql.NullString `db:"source_information"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (section *Section) ToApi() *shared.Section {
	var info *string
	if section.SourceInformation.Valid {
		s := section.SourceInformation.String
		info = &s
	}

	return &shared.Section{
		Id:                section.Id,
		ArticleId:         section.ArticleId,
		Title:             section.Title,
		Level:             shared.HeadingLevel(section.Level),
		Position:          section.Position,
		SourceInformation: info,
	}
}

// ArticleFields is the editable part of an article.
type ArticleFields struct {
	Query     string
	H1        string
	MetaTitle string
	MetaDesc  string
}

// SectionFields is one section as submitted by a client. Position is always
// reassigned from the slice index when stored.
type SectionFields struct {
	Title             string
	Level             string
	SourceInformation *string
}

// SectionFieldsFromApi orders sections by their submitted position (stable,
// so sections without positions keep their slice order).
func SectionFieldsFromApi(sections []*shared.Section) []SectionFields {
	sorted := make([]*shared.Section, 0, len(sections))
	for _, s := range sections {
		if s != nil {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	res := make([]SectionFields, 0, len(sorted))
	for _, s := range sorted {
		res = append(res, SectionFields{
			Title:             s.Title,
			Level:             string(s.Level),
			SourceInformation: s.SourceInformation,
		})
	}
	return res
}
