// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"sort"
)

// venueKeyFields maps each venue to the key fields its dumps carry. UI
// filter widgets are populated from the distinct values of these fields.
var venueKeyFields = map[string][]string{
	"aaai":         {"track", "status", "primary_area"},
	"acl":          {"track", "status", "award"},
	"acmmm":        {"track", "status", "primary_area"},
	"aistats":      {"track", "status", "primary_area"},
	"colm":         {"track", "status", "primary_area"},
	"corl":         {"track", "status", "primary_area"},
	"cvpr":         {"track", "status"},
	"eccv":         {"track", "status"},
	"emnlp":        {"track", "status", "award"},
	"iccv":         {"track", "status", "award", "session"},
	"iclr":         {"track", "status", "primary_area"},
	"icml":         {"track", "status", "primary_area"},
	"ijcai":        {"track", "status", "primary_area"},
	"nips":         {"track", "status", "primary_area"},
	"siggraph":     {"track", "status", "session"},
	"siggraphasia": {"track", "status", "session"},
	"wacv":         {"track", "status"},
	"www":          {"track", "status", "primary_area"},
}

// KeyFields returns the key fields declared for a venue.
func KeyFields(venue string) []string {
	return venueKeyFields[venue]
}

// KeyFieldSummary extracts the sorted distinct values of each key field
// across one venue's papers. Empty values are omitted.
func (c *Catalog) KeyFieldSummary(venue string) (map[string][]string, error) {
	fields, ok := venueKeyFields[venue]
	if !ok {
		return nil, fmt.Errorf("unknown venue %q", venue)
	}

	sets := make(map[string]map[string]bool, len(fields))
	for _, f := range fields {
		sets[f] = make(map[string]bool)
	}

	for _, p := range c.papers[venue] {
		for _, f := range fields {
			if v := keyFieldValue(p, f); v != "" {
				sets[f][v] = true
			}
		}
	}

	summary := make(map[string][]string, len(fields))
	for _, f := range fields {
		values := make([]string, 0, len(sets[f]))
		for v := range sets[f] {
			values = append(values, v)
		}
		sort.Strings(values)
		summary[f] = values
	}
	return summary, nil
}
