package classify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"gobudget/internal/logging"
)

// Suggester proposes the next category for a partially labeled transaction.
// It backs the local models when they have nothing to say, typically because
// the ledger holds no confirmed labels yet.
type Suggester interface {
	SuggestCategory(ctx context.Context, state PreparedTransaction, labels []string) (string, error)
}

// GeminiSuggester asks the Gemini API to pick a category from the known
// label set. The client is created lazily on first use.
type GeminiSuggester struct {
	apiKey string
	model  string
	logger logging.Logger

	initOnce sync.Once
	initErr  error
	client   *genai.Client
	genModel *genai.GenerativeModel
}

// NewGeminiSuggester configures a suggester with the given API key and
// model name. The key is required; no network call is made until the first
// suggestion.
func NewGeminiSuggester(apiKey, model string, logger logging.Logger) *GeminiSuggester {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &GeminiSuggester{
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (s *GeminiSuggester) ensureClient(ctx context.Context) error {
	s.initOnce.Do(func() {
		if s.apiKey == "" {
			s.initErr = fmt.Errorf("gemini api key not set")
			return
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
		if err != nil {
			s.initErr = fmt.Errorf("failed to create Gemini client: %w", err)
			return
		}
		s.client = client
		s.genModel = client.GenerativeModel(s.model)
	})
	return s.initErr
}

func (s *GeminiSuggester) SuggestCategory(ctx context.Context, state PreparedTransaction, labels []string) (string, error) {
	if err := s.ensureClient(ctx); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Categorize the following financial transaction:
Transaction: %s
Total amount: %s
Already assigned categories: %s

Please assign the remaining amount to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		state.Text,
		state.TotalAmount.StringFixed(2),
		strings.Join(state.Categories, ", "),
		strings.Join(labels, ", "))

	resp, err := s.genModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategory(responseText, labels)
	if category == "" {
		return "", fmt.Errorf("no category in Gemini response")
	}

	s.logger.Debug("Gemini suggested category", logging.Field{Key: "category", Value: category})
	return category, nil
}

// extractCategory pulls the category name from a "Category: X" response
// line, falling back to scanning the whole response for a known label.
func extractCategory(response string, labels []string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
		}
	}
	for _, label := range labels {
		if strings.Contains(response, label) {
			return label
		}
	}
	return ""
}
