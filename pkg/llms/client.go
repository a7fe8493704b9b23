// Package llms constructs the chat-completion client for OpenRouter.
package llms

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/reviewlens/reviewlens/pkg/config"
	"github.com/reviewlens/reviewlens/pkg/lib"
)

// ErrMissingAPIKey is returned when no OpenRouter key is configured.
// This is the only configuration problem surfaced as an error: everything
// else in the config degrades to a default.
var ErrMissingAPIKey = errors.New("set OPENROUTER_API_KEY in the environment or .env file")

type clientSettings struct {
	APIKey  string `validate:"required"`
	BaseURL string `validate:"required,url"`
	Model   string `validate:"required"`
}

// NewOpenRouterModel builds a langchaingo model speaking the OpenAI protocol
// against OpenRouter, configured from the resolver.
func NewOpenRouterModel(resolver *config.Resolver, logger *zerolog.Logger) (llms.Model, error) {
	settings := clientSettings{
		APIKey:  resolver.StringValue("openrouter.api_key", ""),
		BaseURL: resolver.StringValue("openrouter.base_url", "https://openrouter.ai/api/v1"),
		Model:   resolver.StringValue("openrouter.model", ""),
	}

	if settings.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if err := lib.ValidateStruct(&settings); err != nil {
		return nil, fmt.Errorf("validate client settings: %w", err)
	}

	model, err := openai.New(
		openai.WithToken(settings.APIKey),
		openai.WithBaseURL(settings.BaseURL),
		openai.WithModel(settings.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create OpenRouter model: %w", err)
	}

	logger.Debug().
		Str("model", settings.Model).
		Str("base_url", settings.BaseURL).
		Msg("OpenRouter client initialized")

	return model, nil
}
