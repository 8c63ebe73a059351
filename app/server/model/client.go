package model

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const ModelRequestTimeout = 2 * time.Minute

const (
	DefaultOutlineBaseUrl = "https://api.anthropic.com/v1"
	DefaultOutlineModel   = "claude-3-7-sonnet-20250219"
	DefaultEnrichBaseUrl  = "https://api.perplexity.ai"
	DefaultEnrichModel    = "sonar"

	OutlineMaxTokens   = 4096
	OutlineTemperature = 1
)

type ClientConfig struct {
	ApiKey  string
	BaseUrl string
	Model   string
}

type Config struct {
	Outline ClientConfig
	Enrich  ClientConfig
}

type ClientInfo struct {
	Client  *openai.Client
	BaseUrl string
	Model   string
}

var outlineClient *ClientInfo
var enrichClient *ClientInfo

// ConfigFromEnv reads the collaborator settings. Both api keys are required.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Outline: ClientConfig{
			ApiKey:  firstEnv("OUTLINE_API_KEY", "ANTHROPIC_API_KEY"),
			BaseUrl: firstEnv("OUTLINE_BASE_URL"),
			Model:   firstEnv("OUTLINE_MODEL"),
		},
		Enrich: ClientConfig{
			ApiKey:  firstEnv("ENRICH_API_KEY", "PERPLEXITY_API_KEY"),
			BaseUrl: firstEnv("ENRICH_BASE_URL"),
			Model:   firstEnv("ENRICH_MODEL"),
		},
	}

	if cfg.Outline.ApiKey == "" {
		return cfg, fmt.Errorf("OUTLINE_API_KEY or ANTHROPIC_API_KEY environment variable must be set")
	}
	if cfg.Enrich.ApiKey == "" {
		return cfg, fmt.Errorf("ENRICH_API_KEY or PERPLEXITY_API_KEY environment variable must be set")
	}

	return cfg, nil
}

func InitClients(cfg Config) {
	outlineClient = newClient(cfg.Outline, DefaultOutlineBaseUrl, DefaultOutlineModel)
	enrichClient = newClient(cfg.Enrich, DefaultEnrichBaseUrl, DefaultEnrichModel)

	log.Printf("outline model: %s (%s)", outlineClient.Model, outlineClient.BaseUrl)
	log.Printf("enrichment model: %s (%s)", enrichClient.Model, enrichClient.BaseUrl)
}

func newClient(cfg ClientConfig, defaultBaseUrl, defaultModel string) *ClientInfo {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}

	config := openai.DefaultConfig(cfg.ApiKey)
	config.BaseURL = strings.TrimRight(baseUrl, "/")
	config.HTTPClient = &http.Client{Timeout: ModelRequestTimeout}

	return &ClientInfo{
		Client:  openai.NewClientWithConfig(config),
		BaseUrl: config.BaseURL,
		Model:   modelName,
	}
}

// CollaboratorError is a transport or API failure from one of the models.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func createChatCompletion(ctx context.Context, name string, client *ClientInfo, req openai.ChatCompletionRequest) (string, error) {
	if client == nil {
		return "", &CollaboratorError{Collaborator: name, Err: errors.New("client not initialized")}
	}

	req.Model = client.Model

	ctx, cancel := context.WithTimeout(ctx, ModelRequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("%s request error after %s: %v", name, time.Since(start), err)
		return "", &CollaboratorError{Collaborator: name, Err: err}
	}

	log.Printf("%s request finished in %s | prompt tokens: %d | completion tokens: %d", name, time.Since(start), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &CollaboratorError{Collaborator: name, Err: errors.New("invalid response format: no message content")}
	}

	return resp.Choices[0].Message.Content, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
