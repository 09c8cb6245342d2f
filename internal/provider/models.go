package provider

// ModelType identifies a standard shape of news data that providers can
// serve. Every fetcher handles exactly one model type, and the registry
// routes requests by it.
type ModelType string

const (
	// ModelNewsSearch is keyword search across recently published articles.
	ModelNewsSearch ModelType = "news_search"

	// ModelTopHeadlines is the current top stories for a country, optionally
	// narrowed to a category.
	ModelTopHeadlines ModelType = "top_headlines"
)

// AllModels returns all defined model types.
func AllModels() []ModelType {
	return []ModelType{ModelNewsSearch, ModelTopHeadlines}
}

// ModelDescription returns a human-readable description for a model type,
// used by the sources listing and the CLI.
func ModelDescription(m ModelType) string {
	switch m {
	case ModelNewsSearch:
		return "Keyword search across recent news articles"
	case ModelTopHeadlines:
		return "Current top headlines by country and category"
	default:
		return string(m)
	}
}
