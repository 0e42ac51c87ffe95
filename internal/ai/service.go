package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ayoolabs/storefront-backend/pkg/config"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
	"github.com/ayoolabs/storefront-backend/pkg/types"
)

// fallbackCategories covers the suggestion endpoint when the model is
// unreachable or returns garbage. Suggestions are a convenience, never a
// hard dependency of the admin console.
var fallbackCategories = []string{"General", "Sale", "New"}

// Service exposes the text-suggestion helpers backing the admin UI.
type Service interface {
	SuggestCategories(ctx context.Context, storeName, storeType string) []string
	GenerateProductDescription(ctx context.Context, productName string, keywords []string) string
	GenerateStoreInsights(ctx context.Context, storeName string, pendingOrders, productCount int) string
}

type completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type service struct {
	client  completer
	enabled bool
	logg    *logger.Logger
}

// NewService constructs the suggestion service. With no API key configured
// every helper short-circuits to its fallback.
func NewService(cfg config.OpenAIConfig, logg *logger.Logger) Service {
	return &service{
		client:  newChatClient(cfg),
		enabled: cfg.Enabled(),
		logg:    logg,
	}
}

// SuggestCategories proposes category names for a storefront. The result
// always has at least the fallback entries.
func (s *service) SuggestCategories(ctx context.Context, storeName, storeType string) []string {
	if !s.enabled {
		return fallbackCategories
	}

	prompt := fmt.Sprintf(
		"Suggest 3 to 6 product category names for a store called %q", storeName)
	if strings.TrimSpace(storeType) != "" {
		prompt += fmt.Sprintf(" of type %q", storeType)
	}
	prompt += ". Respond with only a JSON array of strings."

	content, err := s.client.Complete(ctx, "You name product categories for small retail stores.", prompt)
	if err != nil {
		s.warn(ctx, "category suggestion failed", err)
		return fallbackCategories
	}

	var names []string
	if err := json.Unmarshal([]byte(extractJSONArray(content)), &names); err != nil {
		s.warn(ctx, "category suggestion unparsable", err)
		return fallbackCategories
	}

	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return fallbackCategories
	}
	return cleaned
}

// GenerateProductDescription drafts marketing copy for a product. An
// empty string tells the caller to leave the field alone.
func (s *service) GenerateProductDescription(ctx context.Context, productName string, keywords []string) string {
	if !s.enabled {
		return ""
	}

	prompt := fmt.Sprintf("Write a short product description for %q.", productName)
	if len(keywords) > 0 {
		prompt += " Mention: " + strings.Join(keywords, ", ") + "."
	}
	prompt += " Keep it under 80 words. Respond with the description only."

	content, err := s.client.Complete(ctx, "You write concise product descriptions for online storefronts.", prompt)
	if err != nil {
		s.warn(ctx, "description generation failed", err)
		return ""
	}
	return types.TruncateRunes(content, types.MaxDescriptionRunes)
}

// GenerateStoreInsights summarizes current store activity in plain prose.
func (s *service) GenerateStoreInsights(ctx context.Context, storeName string, pendingOrders, productCount int) string {
	if !s.enabled {
		return ""
	}

	prompt := fmt.Sprintf(
		"The store %q currently lists %d products and has %d pending orders. Give 3 brief, bulleted tips for the owner.",
		storeName, productCount, pendingOrders)

	content, err := s.client.Complete(ctx, "You advise small storefront owners.", prompt)
	if err != nil {
		s.warn(ctx, "insight generation failed", err)
		return ""
	}
	return content
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}

// extractJSONArray tolerates models that wrap the array in code fences or
// surrounding prose.
func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return content
	}
	return content[start : end+1]
}
