package editor

import (
	"testing"

	shared "article-planner/app/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOutline() *Outline {
	return &Outline{
		H1:        "Trail Running Shoes",
		MetaTitle: "Best Trail Running Shoes",
		MetaDesc:  "Our picks for every terrain.",
		Sections: []*shared.Section{
			{Title: "Grip", Level: shared.HeadingLevelMajor, Position: 0},
			{Title: "Lugs", Level: shared.HeadingLevelMinor, Position: 1},
			{Title: "Fit", Level: shared.HeadingLevelMajor, Position: 2},
		},
	}
}

func titles(o *Outline) []string {
	var res []string
	for _, s := range o.Sections {
		res = append(res, s.Title)
	}
	return res
}

func positions(o *Outline) []int {
	var res []int
	for _, s := range o.Sections {
		res = append(res, s.Position)
	}
	return res
}

func TestOutlineFromArticleReindexes(t *testing.T) {
	info := "cushioning data"
	article := &shared.Article{
		Id: 3,
		H1: "Shoes",
		Sections: []*shared.Section{
			{Id: 10, Title: "A", Level: shared.HeadingLevelMajor, Position: 4},
			{Id: 11, Title: "B", Level: shared.HeadingLevelMinor, Position: 9, SourceInformation: &info},
		},
	}

	o := OutlineFromArticle(article)

	assert.Equal(t, []int{0, 1}, positions(o))
	require.NotNil(t, o.Sections[1].SourceInformation)

	// the outline owns its copies
	*o.Sections[1].SourceInformation = "changed"
	assert.Equal(t, "cushioning data", info)
	assert.Equal(t, 4, article.Sections[0].Position)
}

func TestOutlineMove(t *testing.T) {
	o := sampleOutline()

	assert.False(t, o.move(0, -1))
	assert.False(t, o.move(2, 1))
	assert.False(t, o.move(0, 2))
	assert.Equal(t, []string{"Grip", "Lugs", "Fit"}, titles(o))

	assert.True(t, o.move(0, 1))
	assert.Equal(t, []string{"Lugs", "Grip", "Fit"}, titles(o))
	assert.Equal(t, []int{0, 1, 2}, positions(o))

	assert.True(t, o.move(2, -1))
	assert.Equal(t, []string{"Lugs", "Fit", "Grip"}, titles(o))
}

func TestOutlineAddAndRemove(t *testing.T) {
	o := sampleOutline()

	o.add(shared.HeadingLevelMinor)
	o.add(shared.HeadingLevelMajor)
	assert.Equal(t, []string{"Grip", "Lugs", "Fit", PlaceholderMinorTitle, PlaceholderMajorTitle}, titles(o))
	assert.Equal(t, shared.HeadingLevelMinor, o.Sections[3].Level)

	o.remove(1)
	assert.Equal(t, []string{"Grip", "Fit", PlaceholderMinorTitle, PlaceholderMajorTitle}, titles(o))
	assert.Equal(t, []int{0, 1, 2, 3}, positions(o))
}

func TestOutlineEnrichmentHelpers(t *testing.T) {
	o := sampleOutline()
	assert.False(t, o.HasAnyEnrichment())
	assert.Equal(t, []int{0, 1, 2}, o.MissingEnrichment())

	blank := "   "
	text := "facts"
	o.Sections[0].SourceInformation = &blank
	o.Sections[1].SourceInformation = &text

	assert.True(t, o.HasAnyEnrichment())
	assert.Equal(t, []int{0, 2}, o.MissingEnrichment())
}

func TestToSavePlanRequest(t *testing.T) {
	o := sampleOutline()
	o.Sections[0].Id = 99
	o.Sections[0].ArticleId = 7

	req := o.toSavePlanRequest(nil, "trail shoes")
	assert.Nil(t, req.Id)
	assert.Equal(t, "trail shoes", req.Query)
	assert.Len(t, req.Sections, 3)
	assert.Zero(t, req.Sections[0].Id)
	assert.Zero(t, req.Sections[0].ArticleId)

	id := int64(7)
	req = o.toSavePlanRequest(&id, "trail shoes")
	require.NotNil(t, req.Id)
	assert.Equal(t, int64(7), *req.Id)

	// request sections are copies
	req.Sections[1].Title = "changed"
	assert.Equal(t, "Lugs", o.Sections[1].Title)
}
