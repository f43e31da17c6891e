package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ucimeto/ucimeto/internal/boards"
	"github.com/ucimeto/ucimeto/internal/catalog"
	"github.com/ucimeto/ucimeto/internal/db"
	"github.com/ucimeto/ucimeto/internal/nav"
	"github.com/ucimeto/ucimeto/internal/pages"
	"github.com/ucimeto/ucimeto/internal/render"
	"github.com/ucimeto/ucimeto/internal/search"
	"github.com/ucimeto/ucimeto/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ucimeto content server",
	Long:  `Starts the ucimeto server with menu, document, board, and search APIs plus a websocket channel for live menu updates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Port = servePort
		}

		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}

		// Open database.
		dbPath := filepath.Join(cfg.DataDir, "ucimeto.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		// Create LLM provider. Board generation stays disabled without one.
		llmProvider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		// Search is optional: without embeddings the /api/search endpoint
		// is simply not mounted.
		var searchStore *search.Store
		var embedder search.Embedder
		if e, err := createEmbedderFromConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: search disabled: %v\n", err)
		} else {
			embedder = e
			searchStore, err = search.NewStore(embedder)
			if err != nil {
				return fmt.Errorf("creating search store: %w", err)
			}
			if err := searchStore.Load(context.Background(), cfg.DataDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not load search index from %s: %v\n", cfg.DataDir, err)
			}
		}

		catalogSvc := newCatalogService(cfg)
		pagesSvc := newPagesService(cfg)
		renderer := render.New()

		// Create the server.
		srv := server.New(server.Config{
			Port:     cfg.Port,
			DataDir:  cfg.DataDir,
			AllowAll: cfg.AllowAllOrigins,
		}, database, searchStore, embedder, llmProvider, cfg.Model)

		// Register feature routes.
		r := srv.Router()
		catalog.RegisterRoutes(r, catalogSvc)
		nav.RegisterRoutes(r, catalogSvc)
		pages.RegisterRoutes(r, pagesSvc, catalogSvc, renderer)

		boardStore := boards.NewStore(database)
		var generator *boards.Generator
		if llmProvider != nil {
			generator = boards.NewGenerator(llmProvider, cfg.Model)
		}
		boards.RegisterRoutes(r, boardStore, generator, pagesSvc)

		if searchStore != nil {
			search.RegisterRoutes(r, searchStore)
		}

		// Menu refreshes notify websocket clients and reindex the category.
		catalogSvc.OnRefresh(func(category string) {
			srv.Live().MenuUpdated(category)
			if searchStore != nil {
				tree := catalogSvc.Load(context.Background(), category)
				indexer := search.NewIndexer(searchStore)
				if err := indexer.IndexMenu(context.Background(), category, tree); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: reindexing %s: %v\n", category, err)
				}
			}
		})

		// Warm the menu cache for configured categories.
		for _, category := range cfg.Categories {
			catalogSvc.Load(context.Background(), category)
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			if searchStore != nil {
				if err := searchStore.Persist(context.Background(), cfg.DataDir); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: persisting search index: %v\n", err)
				}
			}
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "ucimeto server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Catalog: %s (audience=%s)\n", cfg.CatalogURL, cfg.Audience)
		if searchStore != nil {
			fmt.Fprintf(os.Stderr, "  Documents indexed: %d\n", searchStore.Count())
		}

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
