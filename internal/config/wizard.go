package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .ucimeto.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to ucimeto! Let's configure your instance.")
	fmt.Println()

	// 1. Catalog endpoint.
	urlPrompt := promptui.Prompt{
		Label: "Catalog API base URL",
	}
	catalogURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog url: %w", err)
	}

	// 2. Audience.
	audiencePrompt := promptui.Select{
		Label: "Select audience",
		Items: []string{
			"full    — everything including teacher material",
			"student — assessment and methodology pages hidden",
		},
	}
	audienceIdx, _, err := audiencePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("audience selection: %w", err)
	}
	audiences := []Audience{AudienceFull, AudienceStudent}
	audience := audiences[audienceIdx]

	// 3. Categories.
	categoriesPrompt := promptui.Prompt{
		Label:   "Categories to serve (comma-separated)",
		Default: "fyzika,chemie",
	}
	categoriesStr, err := categoriesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	categories := splitAndTrim(categoriesStr)

	// 4. LLM provider for board generation.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider for board generation",
		Items: []string{"openai", "openrouter", "none"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}

	var provider ProviderType
	model := ""
	if providerStr != "none" {
		provider = ProviderType(providerStr)
		defaultModel := "gpt-4o-mini"
		if provider == ProviderOpenRouter {
			defaultModel = "openai/gpt-4o-mini"
		}
		modelPrompt := promptui.Prompt{
			Label:   "Model",
			Default: defaultModel,
		}
		model, err = modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
	}

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: "8080",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("invalid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// Build the config.
	cfg := DefaultConfig()
	cfg.CatalogURL = catalogURL
	cfg.Audience = audience
	if len(categories) > 0 {
		cfg.Categories = categories
	}
	cfg.Provider = provider
	cfg.Model = model
	cfg.Port = port

	// Check for API keys.
	if envVar := APIKeyEnvVar(provider); envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before generating boards.\n", envVar)
		}
	}
	if os.Getenv("UCIMETO_CATALOG_KEY") == "" {
		fmt.Println("Note: Set UCIMETO_CATALOG_KEY if your catalog requires authentication.")
	}

	// Save to .ucimeto.yml.
	configPath := ".ucimeto.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			token := trimSpace(s[start:i])
			if token != "" {
				result = append(result, token)
			}
			start = i + 1
		}
	}
	return result
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}
