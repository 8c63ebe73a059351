package shared

import (
	"strings"
	"time"
)

type HeadingLevel string

const (
	HeadingLevelMajor HeadingLevel = "h2"
	HeadingLevelMinor HeadingLevel = "h3"
)

func (l HeadingLevel) Valid() bool {
	return l == HeadingLevelMajor || l == HeadingLevelMinor
}

func (l HeadingLevel) Toggle() HeadingLevel {
	if l == HeadingLevelMajor {
		return HeadingLevelMinor
	}
	return HeadingLevelMajor
}

// ParseHeadingLevel accepts "h2"/"h3" in any case and surrounding whitespace.
func ParseHeadingLevel(s string) (HeadingLevel, bool) {
	l := HeadingLevel(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Valid()
}

type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

func (s ArticleStatus) Valid() bool {
	return s == ArticleStatusDraft || s == ArticleStatusPublished
}

type Section struct {
	Id                int64        `json:"id,omitempty"`
	ArticleId         int64        `json:"article_id,omitempty"`
	Title             string       `json:"title"`
	Level             HeadingLevel `json:"level"`
	Position          int          `json:"position"`
	SourceInformation *string      `json:"source_information,omitempty"`
}

func (s *Section) HasSourceInformation() bool {
	return s.SourceInformation != nil && strings.TrimSpace(*s.SourceInformation) != ""
}

type Article struct {
	Id        int64         `json:"id"`
	Query     string        `json:"query"`
	H1        string        `json:"h1"`
	MetaTitle string        `json:"meta_title"`
	MetaDesc  string        `json:"meta_desc"`
	Status    ArticleStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Sections  []*Section    `json:"sections"`
}

// ParentSection returns the nearest major section before index i, or nil.
// Only minor sections have a parent.
func ParentSection(sections []*Section, i int) *Section {
	if i < 0 || i >= len(sections) || sections[i].Level != HeadingLevelMinor {
		return nil
	}
	for j := i - 1; j >= 0; j-- {
		if sections[j].Level == HeadingLevelMajor {
			return sections[j]
		}
	}
	return nil
}
