// Package api — source listing and configuration endpoints.
package api

import (
	"net/http"

	"github.com/newspulse/newspulse/internal/config"
	"github.com/newspulse/newspulse/internal/provider"
)

// SourcesResponse is the JSON envelope returned by GET /api/v1/sources.
type SourcesResponse struct {
	Providers []provider.ProviderInfo         `json:"providers"`
	Coverage  map[provider.ModelType][]string `json:"coverage"`
	Defaults  map[provider.ModelType]string   `json:"defaults"`
}

// handleSources lists the registered news providers, which model types
// each one serves, and the current default per model.
func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	defaults := make(map[provider.ModelType]string)
	for _, model := range provider.AllModels() {
		if name, ok := s.registry.DefaultProvider(model); ok {
			defaults[model] = name
		}
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: SourcesResponse{
			Providers: s.registry.List(),
			Coverage:  s.registry.ModelCoverage(),
			Defaults:  defaults,
		},
	})
}

// handleGetConfig returns a non-sensitive configuration summary plus
// the masked status of API keys. Raw secrets never leave the server.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"news": map[string]interface{}{
				"provider":     s.cfg.News.Provider,
				"lang":         s.cfg.News.Lang,
				"country":      s.cfg.News.Country,
				"max_articles": s.cfg.News.MaxArticles,
			},
			"sentiment": map[string]interface{}{
				"engine": s.cfg.Sentiment.Engine,
				"scorer": s.scorer.Name(),
			},
			"keys": config.CheckAPIKeys(s.cfg),
		},
	})
}
