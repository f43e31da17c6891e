package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ucimeto/ucimeto/internal/nav"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <category> <path>",
	Short: "Resolve a reader path against the category tree",
	Long:  `Resolves a slash-separated path the way the server does for /api/resolve and prints the outcome: matched entry, ancestor chain, expansion set, and board routing.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svc := newCatalogService(cfg)
		tree := svc.Load(context.Background(), args[0])
		if len(tree) == 0 {
			return fmt.Errorf("category %q is empty or unavailable", args[0])
		}

		res := nav.Resolve(tree, args[1])
		if res.Node == nil {
			fmt.Println("no match")
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
