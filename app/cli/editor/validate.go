package editor

import (
	"errors"
	"fmt"
	"strings"

	shared "article-planner/app/shared"
)

var (
	ErrMissingMetadata = errors.New("h1, meta title and meta description are required")
	ErrNoSections      = errors.New("the outline needs at least one section")
)

// OrphanSectionError is a minor heading with no major heading before it.
type OrphanSectionError struct {
	Index int
}

func (e *OrphanSectionError) Error() string {
	return fmt.Sprintf("section %d is an H3 with no H2 before it", e.Index+1)
}

type EmptySectionTitleError struct {
	Index int
}

func (e *EmptySectionTitleError) Error() string {
	return fmt.Sprintf("section %d has an empty title", e.Index+1)
}

// Validate checks the outline can move on to enrichment. It stops at the
// first problem: metadata, then section count, then each section in order
// (rank before title).
func Validate(o *Outline) error {
	if strings.TrimSpace(o.H1) == "" ||
		strings.TrimSpace(o.MetaTitle) == "" ||
		strings.TrimSpace(o.MetaDesc) == "" {
		return ErrMissingMetadata
	}

	if len(o.Sections) == 0 {
		return ErrNoSections
	}

	seenMajor := false
	for i, s := range o.Sections {
		if s.Level == shared.HeadingLevelMajor {
			seenMajor = true
		} else if !seenMajor {
			return &OrphanSectionError{Index: i}
		}

		if strings.TrimSpace(s.Title) == "" {
			return &EmptySectionTitleError{Index: i}
		}
	}

	return nil
}
