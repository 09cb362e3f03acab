// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-compass/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `History lists the most recent searches recorded by the list command:
keyword terms, match mode, venue selection, year range, and the number
of results at the time of the search.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig().History
	store, err := history.Open(cfg.DBPath, cfg.MaxEntries)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No searches recorded.")
		return nil
	}

	fmt.Printf("%-20s  %-30s  %-5s  %-20s  %-11s  %s\n",
		"When", "Keyword", "Mode", "Venues", "Years", "Results")
	fmt.Println(strings.Repeat("-", 100))

	for _, e := range entries {
		keyword := e.Keyword
		if keyword == "" {
			keyword = "(none)"
		}
		if len(keyword) > 30 {
			keyword = keyword[:27] + "..."
		}
		venues := strings.Join(e.Venues, ",")
		if venues == "" {
			venues = "all"
		}
		if len(venues) > 20 {
			venues = venues[:17] + "..."
		}
		fmt.Printf("%-20s  %-30s  %-5s  %-20s  %-11s  %d\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			keyword, e.Mode, venues, formatYearRange(e.YearFrom, e.YearTo), e.Results)
	}
	return nil
}

func formatYearRange(from, to int) string {
	switch {
	case from == 0 && to == 0:
		return "any"
	case to == 0:
		return fmt.Sprintf("%d-", from)
	case from == 0:
		return fmt.Sprintf("-%d", to)
	default:
		return fmt.Sprintf("%d-%d", from, to)
	}
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig().History
		store, err := history.Open(cfg.DBPath, cfg.MaxEntries)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries to show (0 = default)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
