package editor

import (
	shared "article-planner/app/shared"
)

const (
	PlaceholderMajorTitle = "New section"
	PlaceholderMinorTitle = "New subsection"
)

type Field int

const (
	FieldH1 Field = iota
	FieldMetaTitle
	FieldMetaDesc
)

func (f Field) String() string {
	switch f {
	case FieldH1:
		return "H1"
	case FieldMetaTitle:
		return "Meta title"
	case FieldMetaDesc:
		return "Meta description"
	}
	return "unknown"
}

// Outline is the in-memory draft being edited. Section positions always
// match slice indexes.
type Outline struct {
	H1        string
	MetaTitle string
	MetaDesc  string
	Sections  []*shared.Section
}

func OutlineFromArticle(article *shared.Article) *Outline {
	o := &Outline{
		H1:        article.H1,
		MetaTitle: article.MetaTitle,
		MetaDesc:  article.MetaDesc,
	}
	for _, s := range article.Sections {
		o.Sections = append(o.Sections, copySection(s))
	}
	o.reindex()
	return o
}

func OutlineFromGenerated(res *shared.GeneratePlanResponse) *Outline {
	o := &Outline{
		H1:        res.H1,
		MetaTitle: res.MetaTitle,
		MetaDesc:  res.MetaDesc,
	}
	for _, s := range res.Sections {
		o.Sections = append(o.Sections, &shared.Section{Title: s.Title, Level: s.Level})
	}
	o.reindex()
	return o
}

func (o *Outline) Clone() *Outline {
	c := &Outline{
		H1:        o.H1,
		MetaTitle: o.MetaTitle,
		MetaDesc:  o.MetaDesc,
		Sections:  make([]*shared.Section, 0, len(o.Sections)),
	}
	for _, s := range o.Sections {
		c.Sections = append(c.Sections, copySection(s))
	}
	return c
}

func (o *Outline) Field(f Field) string {
	switch f {
	case FieldH1:
		return o.H1
	case FieldMetaTitle:
		return o.MetaTitle
	case FieldMetaDesc:
		return o.MetaDesc
	}
	return ""
}

func (o *Outline) setField(f Field, text string) bool {
	switch f {
	case FieldH1:
		o.H1 = text
	case FieldMetaTitle:
		o.MetaTitle = text
	case FieldMetaDesc:
		o.MetaDesc = text
	default:
		return false
	}
	return true
}

func (o *Outline) inRange(i int) bool {
	return i >= 0 && i < len(o.Sections)
}

// move swaps section i with its neighbor in direction dir. Returns false at
// either boundary.
func (o *Outline) move(i, dir int) bool {
	j := i + dir
	if (dir != -1 && dir != 1) || !o.inRange(i) || !o.inRange(j) {
		return false
	}
	o.Sections[i], o.Sections[j] = o.Sections[j], o.Sections[i]
	o.reindex()
	return true
}

func (o *Outline) remove(i int) {
	o.Sections = append(o.Sections[:i], o.Sections[i+1:]...)
	o.reindex()
}

func (o *Outline) add(level shared.HeadingLevel) {
	title := PlaceholderMajorTitle
	if level == shared.HeadingLevelMinor {
		title = PlaceholderMinorTitle
	}
	o.Sections = append(o.Sections, &shared.Section{Title: title, Level: level})
	o.reindex()
}

func (o *Outline) reindex() {
	for i, s := range o.Sections {
		s.Position = i
	}
}

// MissingEnrichment lists the indexes of sections without enrichment text.
func (o *Outline) MissingEnrichment() []int {
	var res []int
	for i, s := range o.Sections {
		if !s.HasSourceInformation() {
			res = append(res, i)
		}
	}
	return res
}

func (o *Outline) HasAnyEnrichment() bool {
	for _, s := range o.Sections {
		if s.HasSourceInformation() {
			return true
		}
	}
	return false
}

func (o *Outline) toSavePlanRequest(id *int64, query string) shared.SavePlanRequest {
	req := shared.SavePlanRequest{
		Query:     query,
		H1:        o.H1,
		MetaTitle: o.MetaTitle,
		MetaDesc:  o.MetaDesc,
		Sections:  make([]*shared.Section, 0, len(o.Sections)),
	}
	if id != nil {
		v := *id
		req.Id = &v
	}
	for i, s := range o.Sections {
		c := copySection(s)
		c.Id = 0
		c.ArticleId = 0
		c.Position = i
		req.Sections = append(req.Sections, c)
	}
	return req
}

func copySection(s *shared.Section) *shared.Section {
	c := *s
	if s.SourceInformation != nil {
		v := *s.SourceInformation
		c.SourceInformation = &v
	}
	return &c
}
