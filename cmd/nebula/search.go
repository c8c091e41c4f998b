package main

import (
	"github.com/spf13/cobra"

	"github.com/nebulacloud/nebula-go/client"
)

func newSearchCmd() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Semantic search across collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")
			collection, _ := cmd.Flags().GetString("collection")
			limit, _ := cmd.Flags().GetInt("limit")

			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			opts := &client.SearchOptions{Limit: limit}
			if collection != "" {
				opts.CollectionIDs = []string{collection}
			}
			recall, err := c.Search(cmd.Context(), query, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, recall)
		},
	}
	searchCmd.Flags().StringP("query", "q", "", "Search query text (required)")
	searchCmd.Flags().StringP("collection", "c", "", "Restrict to a collection ID or name")
	searchCmd.Flags().IntP("limit", "l", 10, "Maximum results to return")
	_ = searchCmd.MarkFlagRequired("query")
	return searchCmd
}
