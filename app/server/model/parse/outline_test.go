package parse

import (
	"testing"

	shared "article-planner/app/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOutline = `[
  {"h1": "Sourdough Bread: The Complete Guide", "meta_title": "How to Bake Sourdough", "meta_desc": "Learn to bake sourdough at home."},
  {"sections": [
    {"level": "h2", "title": "What is sourdough?"},
    {"level": "h3", "title": "The starter"},
    {"level": "H2 ", "title": "Baking day"}
  ]}
]`

func TestParseOutline(t *testing.T) {
	expected := &shared.GeneratePlanResponse{
		H1:        "Sourdough Bread: The Complete Guide",
		MetaTitle: "How to Bake Sourdough",
		MetaDesc:  "Learn to bake sourdough at home.",
		Sections: []*shared.OutlineSection{
			{Title: "What is sourdough?", Level: shared.HeadingLevelMajor},
			{Title: "The starter", Level: shared.HeadingLevelMinor},
			{Title: "Baking day", Level: shared.HeadingLevelMajor},
		},
	}

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "plain json",
			input: validOutline,
		},
		{
			name:  "json fence",
			input: "```json\n" + validOutline + "\n```",
		},
		{
			name:  "bare fence with whitespace",
			input: "  ```\n" + validOutline + "\n```  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseOutline(tt.input)
			require.NoError(t, err)
			assert.Equal(t, expected, res)
		})
	}
}

func TestParseOutlineFrenchKeys(t *testing.T) {
	res, err := ParseOutline(`[
		{"h1": "Pain au levain", "meta_title": "Le pain au levain", "meta_desc": "Tout savoir."},
		{"sections": [{"niveau": "h2", "titre": "Le levain"}, {"niveau": "h3", "titre": "Farine"}]}
	]`)
	require.NoError(t, err)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, "Le levain", res.Sections[0].Title)
	assert.Equal(t, shared.HeadingLevelMinor, res.Sections[1].Level)
}

func TestParseOutlineErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		detail string
	}{
		{
			name:   "empty",
			input:  "   ",
			detail: "empty response",
		},
		{
			name:   "not json",
			input:  "Here is your outline: ...",
			detail: "not valid JSON",
		},
		{
			name:   "object instead of array",
			input:  `{"h1": "x"}`,
			detail: "expected a JSON array of 2 elements",
		},
		{
			name:   "three elements",
			input:  `[{}, {}, {}]`,
			detail: "got 3",
		},
		{
			name:   "one element",
			input:  `[{"h1": "a", "meta_title": "b", "meta_desc": "c"}]`,
			detail: "got 1",
		},
		{
			name:   "missing meta_desc",
			input:  `[{"h1": "a", "meta_title": "b"}, {"sections": [{"level": "h2", "title": "t"}]}]`,
			detail: "missing metadata",
		},
		{
			name:   "blank h1",
			input:  `[{"h1": "  ", "meta_title": "b", "meta_desc": "c"}, {"sections": [{"level": "h2", "title": "t"}]}]`,
			detail: "missing metadata",
		},
		{
			name:   "metadata not an object",
			input:  `["meta", {"sections": [{"level": "h2", "title": "t"}]}]`,
			detail: "missing metadata",
		},
		{
			name:   "missing sections",
			input:  `[{"h1": "a", "meta_title": "b", "meta_desc": "c"}, {"parts": []}]`,
			detail: "sections are missing or invalid",
		},
		{
			name:   "sections not an array",
			input:  `[{"h1": "a", "meta_title": "b", "meta_desc": "c"}, {"sections": "h2"}]`,
			detail: "sections are missing or invalid",
		},
		{
			name:   "empty sections",
			input:  `[{"h1": "a", "meta_title": "b", "meta_desc": "c"}, {"sections": []}]`,
			detail: "sections are empty",
		},
		{
			name:   "unknown level",
			input:  `[{"h1": "a", "meta_title": "b", "meta_desc": "c"}, {"sections": [{"level": "h4", "title": "t"}]}]`,
			detail: `section 0 has unknown level "h4"`,
		},
		{
			name:   "empty title",
			input:  `[{"h1": "a", "meta_title": "b", "meta_desc": "c"}, {"sections": [{"level": "h2", "title": "ok"}, {"level": "h3", "title": ""}]}]`,
			detail: "section 1 has an empty title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseOutline(tt.input)
			require.Error(t, err)
			assert.Nil(t, res)

			outlineErr, ok := err.(*OutlineError)
			require.True(t, ok, "expected *OutlineError, got %T", err)
			assert.Contains(t, outlineErr.Detail, tt.detail)
		})
	}
}
