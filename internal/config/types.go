package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
)

// Audience selects which view of the catalog is served.
type Audience string

const (
	AudienceFull    Audience = "full"
	AudienceStudent Audience = "student"
)

// Config is the top-level ucimeto configuration, corresponding to .ucimeto.yml.
type Config struct {
	CatalogURL string   `yaml:"catalog_url" koanf:"catalog_url"`
	CatalogKey string   `yaml:"catalog_key" koanf:"catalog_key"`
	Audience   Audience `yaml:"audience" koanf:"audience"`
	Categories []string `yaml:"categories" koanf:"categories"`

	Provider       ProviderType `yaml:"provider" koanf:"provider"`
	Model          string       `yaml:"model" koanf:"model"`
	BaseURL        string       `yaml:"base_url" koanf:"base_url"`
	EmbeddingModel string       `yaml:"embedding_model" koanf:"embedding_model"`

	Port            int    `yaml:"port" koanf:"port"`
	DataDir         string `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
