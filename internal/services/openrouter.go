package services

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type openRouterService struct {
	client *resty.Client
	model  string
}

// NewOpenRouterService talks to an OpenAI-compatible chat completions endpoint.
func NewOpenRouterService(apiKey, model, baseURL string) TextProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &openRouterService{
		client: client,
		model:  model,
	}
}

func (o *openRouterService) Name() string {
	return "openrouter/" + o.model
}

// GenerateText implements TextGenerator.
func (o *openRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": o.model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an expert career coach and technical recruiter."},
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	body := resp.String()
	if !gjson.Valid(body) {
		return "", fmt.Errorf("openrouter returned malformed body: %s", truncate(body, 200))
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
