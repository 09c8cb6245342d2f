// Package providers initializes and registers the concrete news providers.
package providers

import (
	"github.com/newspulse/newspulse/internal/config"
	"github.com/newspulse/newspulse/internal/provider"
	"github.com/newspulse/newspulse/internal/providers/gnews"
	"github.com/newspulse/newspulse/internal/providers/rss"
)

// RegisterAll builds a registry with every provider the configuration
// allows. GNews registers first when an API key is configured, making it
// the default; the key-free RSS provider always registers and serves as
// fallback. A news.provider override moves the default when that provider
// is actually registered.
func RegisterAll(cfg *config.Config) (*provider.Registry, error) {
	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, cfg); err != nil {
		return nil, err
	}
	return reg, nil
}

// RegisterAllTo registers all available providers to the given registry.
func RegisterAllTo(reg *provider.Registry, cfg *config.Config) error {
	// --- GNews (requires API key) ---
	if apiKey := cfg.News.GNewsAPIKey; apiKey != "" {
		gn := gnews.New()
		if err := gn.Init(map[string]string{"api_key": apiKey}); err != nil {
			return err
		}
		if err := reg.Register(gn); err != nil {
			return err
		}
	}

	// --- RSS (free, no API key) ---
	rp := rss.New(cfg.News.RSSFeeds)
	if err := rp.Init(nil); err != nil {
		return err
	}
	if err := reg.Register(rp); err != nil {
		return err
	}

	// Honor an explicit default provider when it is registered. A missing
	// provider (e.g. gnews without a key) leaves the fallback default.
	if name := cfg.News.Provider; name != "" {
		for _, model := range provider.AllModels() {
			_ = reg.SetDefault(model, name)
		}
	}

	return nil
}
