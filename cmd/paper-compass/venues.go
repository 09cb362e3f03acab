package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-compass/internal/catalog"
)

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Show load diagnostics for every declared venue",
	Long: `Venues loads the catalog and prints one row per declared venue: dump
files read, papers loaded, malformed records skipped, and the years
covered. Venues whose data is missing or unreadable show the reason
instead of counts.`,
	RunE: runVenues,
}

func runVenues(cmd *cobra.Command, args []string) error {
	c, report, err := catalog.Load(dataDir(cmd), os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("%-14s  %-6s  %-7s  %-7s  %s\n", "Venue", "Files", "Papers", "Skipped", "Years")
	fmt.Println(strings.Repeat("-", 60))

	for _, vr := range report {
		if vr.Err != nil {
			fmt.Printf("%-14s  %s\n", vr.Venue, vr.Err)
			continue
		}
		fmt.Printf("%-14s  %-6d  %-7d  %-7d  %s\n",
			vr.Venue, vr.Files, vr.Loaded, vr.Skipped, formatYears(c.Years(vr.Venue)))
	}

	fmt.Printf("\n%d papers across %d venues (%d records skipped)\n",
		report.TotalLoaded(), len(c.LoadedVenues()), report.TotalSkipped())
	return nil
}

func formatYears(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprintf("%d", y)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(venuesCmd)
}
