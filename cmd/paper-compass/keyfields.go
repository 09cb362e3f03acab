// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-compass/internal/catalog"
)

var keyfieldsCmd = &cobra.Command{
	Use:   "keyfields <venue>",
	Short: "Show the distinct key-field values of one venue",
	Long: `Keyfields extracts the distinct values of a venue's key fields (track,
status, and where applicable primary_area, award, or session) across its
loaded papers. Frontends use these values to populate filter widgets.

With --out the summary is written to a YAML file instead of stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeyfields,
}

func runKeyfields(cmd *cobra.Command, args []string) error {
	venue := args[0]
	if !catalog.KnownVenue(venue) {
		return fmt.Errorf("unknown venue %q: known venues are %s",
			venue, strings.Join(catalog.Venues, ", "))
	}

	c, _, err := catalog.Load(dataDir(cmd), os.Stderr)
	if err != nil {
		return err
	}

	summary, err := c.KeyFieldSummary(venue)
	if err != nil {
		return err
	}

	if outFile, _ := cmd.Flags().GetString("out"); outFile != "" {
		data, err := yaml.Marshal(summary)
		if err != nil {
			return fmt.Errorf("marshaling key fields: %w", err)
		}
		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote key fields for %s to %s\n", venue, outFile)
		return nil
	}

	fields := make([]string, 0, len(summary))
	for f := range summary {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		fmt.Printf("%s:\n", f)
		for _, v := range summary[f] {
			fmt.Printf("  %s\n", v)
		}
	}
	return nil
}

func init() {
	keyfieldsCmd.Flags().String("out", "", "write the summary to a YAML file")

	rootCmd.AddCommand(keyfieldsCmd)
}
