package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ucimeto/ucimeto/internal/catalog"
)

var menuCmd = &cobra.Command{
	Use:   "menu <category>",
	Short: "Print the normalized menu tree of a category",
	Args:  cobra.ExactArgs(1),
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

		printTree(tree, 0)
		return nil
	},
}

func printTree(nodes []*catalog.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		marker := "-"
		if n.IsContainer() {
			marker = "+"
		}
		line := fmt.Sprintf("%s%s %s", indent, marker, n.Label)
		if n.DocType != "" {
			line += fmt.Sprintf(" [%s]", n.DocType)
		}
		if verbose && n.Slug != "" {
			line += fmt.Sprintf(" (%s)", n.Slug)
		}
		fmt.Println(line)
		printTree(n.Children, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
