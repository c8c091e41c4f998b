package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nebulacloud/nebula-go/client"
)

func newCollectionsCmd() *cobra.Command {
	collectionsCmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage memory collections",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")

			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			col, err := c.CreateCollection(cmd.Context(), client.CreateCollectionRequest{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, col)
		},
	}
	createCmd.Flags().StringP("name", "n", "", "Collection name (required)")
	createCmd.Flags().StringP("description", "d", "", "Collection description")
	_ = createCmd.MarkFlagRequired("name")
	collectionsCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			collections, err := c.ListCollections(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			return printJSON(cmd, collections)
		},
	}
	listCmd.Flags().IntP("limit", "l", 100, "Maximum collections to return")
	listCmd.Flags().IntP("offset", "o", 0, "Number of collections to skip")
	collectionsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get <collection-id>",
		Short: "Fetch a collection by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			col, err := c.GetCollection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, col)
		},
	}
	collectionsCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <collection-id>",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.DeleteCollection(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	collectionsCmd.AddCommand(deleteCmd)

	return collectionsCmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
