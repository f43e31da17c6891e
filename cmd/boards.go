package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ucimeto/ucimeto/internal/boards"
	"github.com/ucimeto/ucimeto/internal/db"
	"github.com/ucimeto/ucimeto/internal/progress"
)

var boardsCmd = &cobra.Command{
	Use:   "boards <category>",
	Short: "Generate practice boards for every lesson in a category",
	Long:  `Walks the category tree and generates a practice board for each lesson document that does not have one yet. Requires a configured LLM provider.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		llmProvider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}
		if llmProvider == nil {
			return fmt.Errorf("no LLM provider configured; set provider and model in %s", cfgFile)
		}

		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		database, err := db.Open(filepath.Join(cfg.DataDir, "ucimeto.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		catalogSvc := newCatalogService(cfg)
		pagesSvc := newPagesService(cfg)
		store := boards.NewStore(database)
		generator := boards.NewGenerator(llmProvider, cfg.Model)

		result, err := boards.BulkGenerate(
			context.Background(),
			catalogSvc, pagesSvc, generator, store,
			args[0], progress.NewReporter(),
		)
		if err != nil {
			return err
		}

		fmt.Printf("Generated %d boards (%d skipped, %d failed)\n",
			result.Generated, result.Skipped, len(result.Failed))
		for _, f := range result.Failed {
			fmt.Fprintf(os.Stderr, "  failed: %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}
