package config

// DefaultCategories are the subject catalogs served when none are configured.
var DefaultCategories = []string{"fyzika", "chemie"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Audience:        AudienceFull,
		Categories:      DefaultCategories,
		Provider:        ProviderOpenAI,
		Model:           "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
		Port:            8080,
		DataDir:         ".ucimeto",
		AllowAllOrigins: false,
	}
}
