// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads per-venue paper dumps into an in-memory collection
// and answers filter queries over it by linear scan.
// See docs/ARCHITECTURE.md § Catalog.
package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/paper-compass/pkg/types"
)

// Venues lists the known venue identifiers in display order. Results of a
// multi-venue query are concatenated in this order.
var Venues = []string{
	"aaai", "acl", "acmmm", "aistats", "colm", "corl",
	"cvpr", "eccv", "emnlp", "iccv", "iclr", "icml",
	"ijcai", "nips", "siggraph", "siggraphasia", "wacv", "www",
}

// KnownVenue reports whether name is a declared venue identifier.
func KnownVenue(name string) bool {
	for _, v := range Venues {
		if v == name {
			return true
		}
	}
	return false
}

// Catalog is the full in-memory paper collection across all loaded venues.
// It is built once by Load and never mutated afterwards, so a single
// Catalog may be shared by reference across concurrent readers. A reload
// builds a fresh Catalog and swaps the reference wholesale.
type Catalog struct {
	papers map[string][]types.Paper
	loaded []string // venues with at least one paper, in declared order
}

// VenueReport records the load outcome for one venue.
type VenueReport struct {
	Venue   string
	Files   int
	Loaded  int
	Skipped int
	Err     error
}

// LoadReport collects per-venue load outcomes in declared venue order.
type LoadReport []VenueReport

// TotalLoaded returns the number of papers loaded across all venues.
func (r LoadReport) TotalLoaded() int {
	n := 0
	for _, vr := range r {
		n += vr.Loaded
	}
	return n
}

// TotalSkipped returns the number of malformed records skipped across all venues.
func (r LoadReport) TotalSkipped() int {
	n := 0
	for _, vr := range r {
		n += vr.Skipped
	}
	return n
}

// Load builds a Catalog from dataDir, which contains one subdirectory per
// declared venue holding <venue><year>.json dumps. A missing venue directory
// or a malformed file skips that venue (never fatal); individual malformed
// records are skipped and counted. Warnings are written to w. Load fails
// only when dataDir itself cannot be read.
func Load(dataDir string, w io.Writer) (*Catalog, LoadReport, error) {
	if _, err := os.Stat(dataDir); err != nil {
		return nil, nil, fmt.Errorf("reading data directory %s: %w", dataDir, err)
	}

	c := &Catalog{papers: make(map[string][]types.Paper)}
	report := make(LoadReport, 0, len(Venues))

	for _, venue := range Venues {
		vr := loadVenue(dataDir, venue, w)
		report = append(report, vr.report)
		if len(vr.papers) > 0 {
			c.papers[venue] = vr.papers
			c.loaded = append(c.loaded, venue)
		}
	}

	return c, report, nil
}

type venueLoad struct {
	papers []types.Paper
	report VenueReport
}

// loadVenue reads every <venue>*.json dump under dataDir/<venue>, oldest
// year first so per-venue order is stable across loads.
func loadVenue(dataDir, venue string, w io.Writer) venueLoad {
	vr := VenueReport{Venue: venue}
	dir := filepath.Join(dataDir, venue)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			vr.Err = fmt.Errorf("no data directory")
		} else {
			vr.Err = err
		}
		fmt.Fprintf(w, "warning: %s: %v\n", venue, vr.Err)
		return venueLoad{report: vr}
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, venue) || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		vr.Err = fmt.Errorf("no dump files")
		fmt.Fprintf(w, "warning: %s: %v\n", venue, vr.Err)
		return venueLoad{report: vr}
	}

	var papers []types.Paper
	for _, name := range names {
		year := yearFromName(name)
		if year == 0 {
			// Per-file year is required; never guess.
			fmt.Fprintf(w, "warning: %s: skipping %s: no year in file name\n", venue, name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: %s: skipping %s: %v\n", venue, name, err)
			continue
		}

		loaded, skipped, err := parseDump(data, venue, year)
		if err != nil {
			fmt.Fprintf(w, "warning: %s: skipping %s: %v\n", venue, name, err)
			continue
		}

		vr.Files++
		vr.Skipped += skipped
		papers = append(papers, loaded...)
	}

	vr.Loaded = len(papers)
	if vr.Files == 0 && vr.Err == nil {
		vr.Err = fmt.Errorf("no usable dump files")
	}
	return venueLoad{papers: papers, report: vr}
}

// LoadedVenues returns the venues with at least one paper, in declared order.
func (c *Catalog) LoadedVenues() []string {
	out := make([]string, len(c.loaded))
	copy(out, c.loaded)
	return out
}

// Papers returns the papers of one venue in load order. The returned slice
// is shared; callers must not modify it.
func (c *Catalog) Papers(venue string) []types.Paper {
	return c.papers[venue]
}

// Len returns the total number of papers in the catalog.
func (c *Catalog) Len() int {
	n := 0
	for _, ps := range c.papers {
		n += len(ps)
	}
	return n
}

// Years returns the sorted distinct years present for one venue.
func (c *Catalog) Years(venue string) []int {
	seen := make(map[int]bool)
	for _, p := range c.papers[venue] {
		seen[p.Year] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
