package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the topic history used to avoid repeat questions",
}

var historyListCmd = &cobra.Command{
	Use:   "list <category>",
	Short: "List used topics for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		topics, err := s.ArticleRepo().ForCategory(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(topics) == 0 {
			fmt.Printf("No used topics recorded for %q.\n", args[0])
			return nil
		}
		for _, t := range topics {
			fmt.Println(strings.ReplaceAll(t, "_", " "))
		}
		return nil
	},
}

var historyCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many topics are recorded",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		n, err := s.ArticleRepo().Count(context.Background())
		if err != nil {
			return fmt.Errorf("count history: %w", err)
		}
		fmt.Printf("%d of %d topic slots used.\n", n, store.MaxStoredArticles)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all used topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.ArticleRepo().Clear(context.Background()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Println("Topic history cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyCountCmd)
	historyCmd.AddCommand(historyClearCmd)
}
