// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-compass/internal/catalog"
	"github.com/pdiddy/paper-compass/internal/history"
)

var listCmd = &cobra.Command{
	Use:   "list [keyword...]",
	Short: "Filter the catalog and list matching papers",
	Long: `List loads the catalog from the data directory and prints the papers
matching the given constraints: venue selection, an inclusive year range,
and keyword terms matched case-insensitively against title, abstract,
keywords, and authors.

Multiple keyword terms combine with --mode any (default) or --mode all.
Withdrawn and rejected papers are excluded unless --include-rejected is
set. Results preserve declared venue order and per-venue load order.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	fromFile, _ := cmd.Flags().GetString("from-file")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Replay a saved query file without re-filtering.
	if fromFile != "" {
		qf, err := catalog.ReadQueryFile(fromFile)
		if err != nil {
			return err
		}
		if jsonOutput {
			return catalog.FormatJSON(qf.Results, os.Stdout)
		}
		catalog.FormatTable(qf.Results, os.Stdout)
		return nil
	}

	q := queryFromFlags(cmd, args)
	if err := q.Validate(); err != nil {
		return err
	}

	c, report, err := catalog.Load(dataDir(cmd), os.Stderr)
	if err != nil {
		return err
	}
	if report.TotalLoaded() == 0 {
		return fmt.Errorf("no venue data loaded from %s", dataDir(cmd))
	}

	papers, err := c.Filter(q)
	if err != nil {
		return err
	}

	recordSearch(cmd, q, len(papers))

	if saveFile, _ := cmd.Flags().GetString("save"); saveFile != "" {
		if err := catalog.WriteQueryFile(saveFile, q, papers); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query and %d results to %s\n", len(papers), saveFile)
	}

	if jsonOutput {
		return catalog.FormatJSON(papers, os.Stdout)
	}
	catalog.FormatTable(papers, os.Stdout)
	return nil
}

func queryFromFlags(cmd *cobra.Command, args []string) catalog.Query {
	venues, _ := cmd.Flags().GetStringSlice("venue")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	mode, _ := cmd.Flags().GetString("mode")
	fields, _ := cmd.Flags().GetStringSlice("field")
	includeRejected, _ := cmd.Flags().GetBool("include-rejected")
	track, _ := cmd.Flags().GetStringSlice("track")
	status, _ := cmd.Flags().GetStringSlice("status")

	q := catalog.Query{
		Venues:          venues,
		YearFrom:        from,
		YearTo:          to,
		Keyword:         strings.Join(args, " "),
		Mode:            catalog.MatchMode(mode),
		Fields:          fields,
		IncludeRejected: includeRejected,
	}
	if len(track) > 0 || len(status) > 0 {
		q.KeyFields = map[string][]string{}
		if len(track) > 0 {
			q.KeyFields["track"] = track
		}
		if len(status) > 0 {
			q.KeyFields["status"] = status
		}
	}
	return q
}

// recordSearch appends the query to the history database. Failures are
// warnings; the search result has already been computed.
func recordSearch(cmd *cobra.Command, q catalog.Query, results int) {
	if skip, _ := cmd.Flags().GetBool("no-history"); skip {
		return
	}

	cfg := loadConfig().History
	store, err := history.Open(cfg.DBPath, cfg.MaxEntries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	mode := string(q.Mode)
	if mode == "" {
		mode = string(catalog.MatchAny)
	}
	err = store.Record(context.Background(), history.Entry{
		Keyword:  q.Keyword,
		Mode:     mode,
		Venues:   q.Venues,
		YearFrom: q.YearFrom,
		YearTo:   q.YearTo,
		Results:  results,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record search: %v\n", err)
	}
}

func init() {
	listCmd.Flags().StringSlice("venue", nil, "restrict to these venues (repeatable; default all)")
	listCmd.Flags().Int("from", 0, "earliest year, inclusive (0 = unbounded)")
	listCmd.Flags().Int("to", 0, "latest year, inclusive (0 = unbounded)")
	listCmd.Flags().String("mode", "any", "keyword match mode: any or all")
	listCmd.Flags().StringSlice("field", nil, "fields to search: title, abstract, keywords, authors (default: title, abstract, keywords)")
	listCmd.Flags().Bool("include-rejected", false, "include withdrawn and rejected papers")
	listCmd.Flags().StringSlice("track", nil, "restrict to these track values")
	listCmd.Flags().StringSlice("status", nil, "restrict to these status values")
	listCmd.Flags().Bool("json", false, "output results as JSON")
	listCmd.Flags().String("save", "", "save query and results to a YAML file")
	listCmd.Flags().String("from-file", "", "replay results from a saved query file")
	listCmd.Flags().Bool("no-history", false, "do not record this search in the history")

	rootCmd.AddCommand(listCmd)
}
