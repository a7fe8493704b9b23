// Package analyzer classifies product-review sentiment through a
// chat-completion model, pulling settings and prompt templates from the
// config and prompt subsystems.
package analyzer

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"github.com/reviewlens/reviewlens/pkg/config"
	"github.com/reviewlens/reviewlens/pkg/prompts"
)

const promptName = "sentiment_analysis"

type Analyzer struct {
	model    llms.Model
	resolver *config.Resolver
	store    *prompts.Store
	logger   *zerolog.Logger
}

func New(model llms.Model, resolver *config.Resolver, store *prompts.Store, logger *zerolog.Logger) *Analyzer {
	return &Analyzer{
		model:    model,
		resolver: resolver,
		store:    store,
		logger:   logger,
	}
}

// Analyze classifies a single review. Service failures are returned as-is;
// retry policy belongs to the caller.
func (a *Analyzer) Analyze(ctx context.Context, reviewText string) (string, error) {
	model := a.resolver.StringValue("openrouter.model", "")
	systemMessage := a.resolver.StringValue("analysis.system_message", "")
	temperature := a.resolver.FloatValue("openrouter.temperature", 0.3)

	prompt, err := a.store.LoadAndFormat(promptName, map[string]string{
		"review_text": reviewText,
	})
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	resp, err := a.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemMessage),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithModel(model),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("model", model).
			Msg("Error generating completion")
		return "", fmt.Errorf("generate completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return resp.Choices[0].Content, nil
}

// Result pairs one review with its classification or failure.
type Result struct {
	Review    string
	Sentiment string
	Err       error
}

// AnalyzeBatch classifies reviews concurrently with at most concurrency
// in-flight completions. Results keep the input order; per-item failures are
// reported in Result.Err rather than aborting the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, reviews []string, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(reviews))
	pool := pond.NewPool(concurrency)

	for i, review := range reviews {
		pool.Submit(func() {
			sentiment, err := a.Analyze(ctx, review)
			results[i] = Result{Review: review, Sentiment: sentiment, Err: err}
		})
	}

	pool.StopAndWait()
	return results
}
