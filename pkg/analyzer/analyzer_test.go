package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"github.com/reviewlens/reviewlens/pkg/config"
	"github.com/reviewlens/reviewlens/pkg/prompts"
)

type fakeModel struct {
	mu       sync.Mutex
	calls    atomic.Int32
	response string
	err      error
	lastMsgs []llms.MessageContent
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastMsgs = messages
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.response}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := m.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func newTestAnalyzer(t *testing.T, model llms.Model) *Analyzer {
	t.Helper()

	dir := t.TempDir()
	template := "Classify the sentiment of this review: {review_text}"
	if err := os.WriteFile(filepath.Join(dir, promptName+".txt"), []byte(template), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := zerolog.Nop()
	resolver := config.NewResolver(&logger)
	store := prompts.NewStore(dir)
	return New(model, resolver, store, &logger)
}

func TestAnalyze(t *testing.T) {
	model := &fakeModel{response: `{"sentiment": "positive"}`}
	a := newTestAnalyzer(t, model)

	got, err := a.Analyze(context.Background(), "great product")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != `{"sentiment": "positive"}` {
		t.Errorf("Analyze() = %q", got)
	}

	if len(model.lastMsgs) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(model.lastMsgs))
	}
	if model.lastMsgs[0].Role != llms.ChatMessageTypeSystem {
		t.Errorf("first message role = %v, want system", model.lastMsgs[0].Role)
	}
	user, ok := model.lastMsgs[1].Parts[0].(llms.TextContent)
	if !ok {
		t.Fatalf("user message part = %T, want llms.TextContent", model.lastMsgs[1].Parts[0])
	}
	if !strings.Contains(user.Text, "great product") {
		t.Errorf("user message %q should contain the review text", user.Text)
	}
}

func TestAnalyze_ServiceErrorPropagates(t *testing.T) {
	serviceErr := errors.New("upstream unavailable")
	a := newTestAnalyzer(t, &fakeModel{err: serviceErr})

	_, err := a.Analyze(context.Background(), "any review")
	if !errors.Is(err, serviceErr) {
		t.Errorf("Analyze() error = %v, want wrapped service error", err)
	}
}

func TestAnalyze_MissingTemplate(t *testing.T) {
	logger := zerolog.Nop()
	resolver := config.NewResolver(&logger)
	store := prompts.NewStore(t.TempDir())
	a := New(&fakeModel{response: "ok"}, resolver, store, &logger)

	var notFound *prompts.NotFoundError
	if _, err := a.Analyze(context.Background(), "review"); !errors.As(err, &notFound) {
		t.Errorf("Analyze() error = %v, want *prompts.NotFoundError", err)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	model := &fakeModel{response: "neutral"}
	a := newTestAnalyzer(t, model)

	reviews := []string{"first", "second", "third"}
	results := a.AnalyzeBatch(context.Background(), reviews, 2)

	if len(results) != len(reviews) {
		t.Fatalf("got %d results, want %d", len(results), len(reviews))
	}
	for i, res := range results {
		if res.Review != reviews[i] {
			t.Errorf("results[%d].Review = %q, want input order preserved (%q)", i, res.Review, reviews[i])
		}
		if res.Err != nil {
			t.Errorf("results[%d].Err = %v", i, res.Err)
		}
		if res.Sentiment != "neutral" {
			t.Errorf("results[%d].Sentiment = %q", i, res.Sentiment)
		}
	}
	if got := model.calls.Load(); got != int32(len(reviews)) {
		t.Errorf("model called %d times, want %d", got, len(reviews))
	}
}

func TestAnalyzeBatch_PartialFailure(t *testing.T) {
	a := newTestAnalyzer(t, &fakeModel{err: errors.New("boom")})

	results := a.AnalyzeBatch(context.Background(), []string{"a", "b"}, 1)
	for i, res := range results {
		if res.Err == nil {
			t.Errorf("results[%d].Err = nil, want failure reported per item", i)
		}
	}
}
