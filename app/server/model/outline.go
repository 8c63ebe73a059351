package model

import (
	"context"
	"log"

	"article-planner/app/server/model/parse"
	"article-planner/app/server/model/prompts"
	shared "article-planner/app/shared"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// GenerateOutline asks the outline model for a title, meta tags and sections
// for query. Returns a *parse.OutlineError when the model answers with
// something that isn't a valid outline.
func GenerateOutline(ctx context.Context, query string) (*shared.GeneratePlanResponse, error) {
	language := DetectLanguage(query)
	log.Printf("generating outline for %q (language: %s)", query, language)

	content, err := createChatCompletion(ctx, "outline", outlineClient, openai.ChatCompletionRequest{
		MaxTokens:   OutlineMaxTokens,
		Temperature: OutlineTemperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompts.GetOutlinePrompt(query, language),
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error generating outline")
	}

	outline, err := parse.ParseOutline(content)
	if err != nil {
		log.Printf("error parsing outline: %v\nraw response:\n%s", err, spew.Sdump(content))
		return nil, err
	}

	log.Printf("generated outline %q with %d sections", outline.H1, len(outline.Sections))

	return outline, nil
}
