package bootstrap

import (
	"net/http"

	"steward/socialhub/internal/config"
	"steward/socialhub/internal/ingest"
)

// NewFetcherRegistry registers an HTTP feed fetcher for every configured
// platform feed.
func NewFetcherRegistry(cfg config.IngestionConfig, client *http.Client) *ingest.Registry {
	registry := ingest.NewRegistry()
	for platform, feedURL := range cfg.Feeds {
		if feedURL == "" {
			continue
		}
		registry.Register(platform, ingest.NewHTTPFetcher(feedURL, client))
	}
	return registry
}
