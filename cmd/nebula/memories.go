package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nebulacloud/nebula-go/client"
)

func newMemoriesCmd() *cobra.Command {
	memoriesCmd := &cobra.Command{
		Use:   "memories",
		Short: "Store, inspect, and delete memories",
	}

	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Store a memory in a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, _ := cmd.Flags().GetString("collection")
			content, _ := cmd.Flags().GetString("content")
			role, _ := cmd.Flags().GetString("role")
			memoryID, _ := cmd.Flags().GetString("memory")

			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			id, err := c.StoreMemory(cmd.Context(), client.Memory{
				CollectionID: collection,
				Content:      content,
				Role:         role,
				MemoryID:     memoryID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	storeCmd.Flags().StringP("collection", "c", "", "Collection ID or name (required)")
	storeCmd.Flags().String("content", "", "Text content to store (required)")
	storeCmd.Flags().StringP("role", "r", "", "Speaker role; presence selects conversation mode")
	storeCmd.Flags().StringP("memory", "m", "", "Existing memory ID to append to")
	_ = storeCmd.MarkFlagRequired("collection")
	_ = storeCmd.MarkFlagRequired("content")
	memoriesCmd.AddCommand(storeCmd)

	getCmd := &cobra.Command{
		Use:   "get <memory-id>",
		Short: "Fetch a memory with its chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			mem, err := c.GetMemory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, mem)
		},
	}
	memoriesCmd.AddCommand(getCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, _ := cmd.Flags().GetString("collection")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			opts := client.ListMemoriesOptions{Limit: limit, Offset: offset}
			if collection != "" {
				opts.CollectionIDs = []string{collection}
			}
			memories, err := c.ListMemories(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, memories)
		},
	}
	listCmd.Flags().StringP("collection", "c", "", "Restrict to a collection ID or name")
	listCmd.Flags().IntP("limit", "l", 100, "Maximum memories to return")
	listCmd.Flags().IntP("offset", "o", 0, "Number of memories to skip")
	memoriesCmd.AddCommand(listCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <memory-id>...",
		Short: "Delete one or more memories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			if len(args) == 1 {
				if err := c.DeleteMemory(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "deleted")
				return nil
			}
			result, err := c.DeleteMemories(cmd.Context(), args)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	memoriesCmd.AddCommand(deleteCmd)

	return memoriesCmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the Nebula service",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			status, err := c.HealthCheck(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, status)
		},
	}
}
