package cmd

import (
	"fmt"
	"os"

	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/config"
	"github.com/ucimeto/ucimeto/internal/llm"
	"github.com/ucimeto/ucimeto/internal/pages"
	"github.com/ucimeto/ucimeto/internal/search"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `ucimeto init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w\nRun `ucimeto init` to reconfigure", err)
	}
	return cfg, nil
}

// catalogKey resolves the catalog API key from config or environment.
func catalogKey(cfg *config.Config) string {
	if cfg.CatalogKey != "" {
		return cfg.CatalogKey
	}
	return os.Getenv("UCIMETO_CATALOG_KEY")
}

// newCatalogService builds the catalog client and caching service from config.
func newCatalogService(cfg *config.Config) *catalog.Service {
	client := catalog.NewClient(cfg.CatalogURL, catalogKey(cfg))
	return catalog.NewService(client, catalog.Audience(cfg.Audience))
}

// newPagesService builds the page client and caching service from config.
func newPagesService(cfg *config.Config) *pages.Service {
	client := pages.NewClient(cfg.CatalogURL, catalogKey(cfg))
	return pages.NewService(client)
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
// Returns nil without error when no provider is configured; board generation
// is then unavailable.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	return llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.BaseURL)
}

// createEmbedderFromConfig creates a search.Embedder based on config.
// OpenAI embeddings are used for both providers.
func createEmbedderFromConfig(cfg *config.Config) (search.Embedder, error) {
	apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for embeddings")
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = string(search.ModelTextEmbedding3Small)
	}
	return search.NewOpenAIEmbedder(apiKey, search.OpenAIModel(model)), nil
}
