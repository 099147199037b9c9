package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// TextGenerator turns a prompt into a completion. Implementations must treat
// the result as untrusted text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// TextProvider is a single hosted model behind a TextGenerator.
type TextProvider interface {
	TextGenerator
	Name() string
}

type generationService struct {
	providers   []TextProvider
	maxAttempts int
	timeout     time.Duration
}

// NewGenerationService walks providers in order, one provider per attempt,
// wrapping around when there are more attempts than providers. maxAttempts is
// clamped to [1, 2] so a request is retried at most once.
func NewGenerationService(timeout time.Duration, maxAttempts int, providers ...TextProvider) TextGenerator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if maxAttempts > 2 {
		maxAttempts = 2
	}

	return &generationService{
		providers:   providers,
		maxAttempts: maxAttempts,
		timeout:     timeout,
	}
}

// GenerateText implements TextGenerator.
func (s *generationService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrGenerationFailed)
	}
	if len(s.providers) == 0 {
		return "", fmt.Errorf("%w: no text provider configured", ErrGenerationFailed)
	}

	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}

		provider := s.providers[attempt%len(s.providers)]
		text, err := s.generateOnce(ctx, provider, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = err
		if attempt+1 < s.maxAttempts {
			log.Warnf("⚠️  %s attempt %d failed: %v. Retrying...", provider.Name(), attempt+1, err)
		} else {
			log.Errorf("❌ %s attempt %d failed: %v", provider.Name(), attempt+1, err)
		}
	}

	return "", fmt.Errorf("%w after %d attempt(s): %w", ErrGenerationFailed, s.maxAttempts, lastErr)
}

func (s *generationService) generateOnce(ctx context.Context, provider TextProvider, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := provider.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
