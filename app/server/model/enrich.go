package model

import (
	"context"
	"log"
	"strings"

	"article-planner/app/server/model/prompts"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// EnrichSection fetches the key facts for one section heading. parent is the
// enclosing major heading for a minor section, or empty.
func EnrichSection(ctx context.Context, h1, section, parent string) (string, error) {
	language := DetectLanguage(h1 + " " + section)
	log.Printf("enriching section %q of %q (parent: %q, language: %s)", section, h1, parent, language)

	content, err := createChatCompletion(ctx, "enrichment", enrichClient, openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompts.GetSectionPrompt(h1, section, parent, language),
			},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "error searching section information")
	}

	return strings.TrimSpace(content), nil
}
