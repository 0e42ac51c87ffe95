package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoolabs/storefront-backend/pkg/config"
)

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if status/100 != 2 {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func testConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}
}

func TestSuggestCategoriesParsesModelOutput(t *testing.T) {
	srv := chatServer(t, "```json\n[\"Drinks\", \"Snacks\", \" Household \"]\n```", http.StatusOK)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL), nil)
	got := svc.SuggestCategories(context.Background(), "Corner Shop", "grocery")
	assert.Equal(t, []string{"Drinks", "Snacks", "Household"}, got)
}

func TestSuggestCategoriesFallsBackOnUpstreamError(t *testing.T) {
	srv := chatServer(t, "", http.StatusBadGateway)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL), nil)
	got := svc.SuggestCategories(context.Background(), "Corner Shop", "")
	assert.Equal(t, fallbackCategories, got)
}

func TestSuggestCategoriesFallsBackOnGarbage(t *testing.T) {
	srv := chatServer(t, "sure! here are some ideas", http.StatusOK)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL), nil)
	got := svc.SuggestCategories(context.Background(), "Corner Shop", "")
	assert.Equal(t, fallbackCategories, got)
}

func TestSuggestCategoriesDisabledWithoutKey(t *testing.T) {
	svc := NewService(config.OpenAIConfig{}, nil)
	got := svc.SuggestCategories(context.Background(), "Corner Shop", "")
	assert.Equal(t, fallbackCategories, got)
}

func TestGenerateProductDescriptionTruncates(t *testing.T) {
	srv := chatServer(t, strings.Repeat("x", 900), http.StatusOK)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL), nil)
	got := svc.GenerateProductDescription(context.Background(), "Cola", []string{"cold", "sweet"})
	assert.Equal(t, 500, utf8.RuneCountInString(got))
}

func TestGenerateProductDescriptionEmptyOnFailure(t *testing.T) {
	srv := chatServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL), nil)
	got := svc.GenerateProductDescription(context.Background(), "Cola", nil)
	assert.Empty(t, got)
}

func TestGenerateStoreInsightsReturnsProse(t *testing.T) {
	srv := chatServer(t, "Stock more drinks. Ship pending orders today.", http.StatusOK)
	defer srv.Close()

	svc := NewService(testConfig(srv.URL), nil)
	got := svc.GenerateStoreInsights(context.Background(), "Corner Shop", 3, 12)
	assert.Contains(t, got, "pending orders")
}

func TestGenerateStoreInsightsAsksForThreeBulletedTips(t *testing.T) {
	var captured struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "- restock drinks"}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	svc := NewService(testConfig(srv.URL), nil)
	_ = svc.GenerateStoreInsights(context.Background(), "Corner Shop", 2, 5)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "3 brief, bulleted tips")
	assert.Contains(t, captured.Messages[1].Content, "2 pending orders")
}
