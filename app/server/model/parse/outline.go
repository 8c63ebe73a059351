package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	shared "article-planner/app/shared"
)

var openingFenceRegex = regexp.MustCompile("^```[a-zA-Z]*\\s*")
var closingFenceRegex = regexp.MustCompile("\\s*```$")

// OutlineError describes why a model response isn't a usable outline.
type OutlineError struct {
	Detail string
}

func (e *OutlineError) Error() string {
	return "invalid outline: " + e.Detail
}

func outlineErr(format string, args ...interface{}) error {
	return &OutlineError{Detail: fmt.Sprintf(format, args...)}
}

type outlineMetadata struct {
	H1        string `json:"h1"`
	MetaTitle string `json:"meta_title"`
	MetaDesc  string `json:"meta_desc"`
}

// the french keys are what older prompts asked for
type outlineSection struct {
	Title  string `json:"title"`
	Titre  string `json:"titre"`
	Level  string `json:"level"`
	Niveau string `json:"niveau"`
}

type outlineSections struct {
	Sections *[]json.RawMessage `json:"sections"`
}

// ParseOutline reads the two-element array the outline prompt asks for:
// metadata first, sections second. A surrounding ``` fence is ignored.
func ParseOutline(raw string) (*shared.GeneratePlanResponse, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = openingFenceRegex.ReplaceAllString(cleaned, "")
	cleaned = closingFenceRegex.ReplaceAllString(cleaned, "")

	if cleaned == "" {
		return nil, outlineErr("empty response")
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, outlineErr("response is not valid JSON: %v", err)
	}

	if _, ok := parsed.([]interface{}); !ok {
		return nil, outlineErr("expected a JSON array of 2 elements")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, outlineErr("response is not valid JSON: %v", err)
	}

	if len(elements) != 2 {
		return nil, outlineErr("expected a JSON array of 2 elements, got %d", len(elements))
	}

	var meta outlineMetadata
	if err := json.Unmarshal(elements[0], &meta); err != nil {
		return nil, outlineErr("missing metadata (h1, meta_title or meta_desc)")
	}

	meta.H1 = strings.TrimSpace(meta.H1)
	meta.MetaTitle = strings.TrimSpace(meta.MetaTitle)
	meta.MetaDesc = strings.TrimSpace(meta.MetaDesc)

	if meta.H1 == "" || meta.MetaTitle == "" || meta.MetaDesc == "" {
		return nil, outlineErr("missing metadata (h1, meta_title or meta_desc)")
	}

	var secs outlineSections
	if err := json.Unmarshal(elements[1], &secs); err != nil || secs.Sections == nil {
		return nil, outlineErr("sections are missing or invalid")
	}

	if len(*secs.Sections) == 0 {
		return nil, outlineErr("sections are empty")
	}

	res := &shared.GeneratePlanResponse{
		H1:        meta.H1,
		MetaTitle: meta.MetaTitle,
		MetaDesc:  meta.MetaDesc,
		Sections:  make([]*shared.OutlineSection, 0, len(*secs.Sections)),
	}

	for i, rawSection := range *secs.Sections {
		var s outlineSection
		if err := json.Unmarshal(rawSection, &s); err != nil {
			return nil, outlineErr("section %d is not an object", i)
		}

		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = strings.TrimSpace(s.Titre)
		}
		levelStr := s.Level
		if levelStr == "" {
			levelStr = s.Niveau
		}

		level, ok := shared.ParseHeadingLevel(levelStr)
		if !ok {
			return nil, outlineErr("section %d has unknown level %q", i, levelStr)
		}
		if title == "" {
			return nil, outlineErr("section %d has an empty title", i)
		}

		res.Sections = append(res.Sections, &shared.OutlineSection{
			Title: title,
			Level: level,
		})
	}

	return res, nil
}
