// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-compass/pkg/types"
)

// MatchMode selects how multiple keyword terms combine.
type MatchMode string

const (
	// MatchAny returns papers containing at least one term.
	MatchAny MatchMode = "any"
	// MatchAll returns papers containing every term.
	MatchAll MatchMode = "all"
)

// SearchFields lists the record fields keyword matching can inspect.
var SearchFields = []string{"title", "abstract", "keywords", "authors"}

// defaultFields are searched when the query names none. Authors are
// opt-in: a keyword is a topic term unless the caller says otherwise.
var defaultFields = []string{"title", "abstract", "keywords"}

// rejectedStatuses are excluded unless the query opts in.
var rejectedStatuses = map[string]bool{
	"Withdraw":    true,
	"Reject":      true,
	"Desk Reject": true,
}

// Query holds the optional constraints of one filter request. The zero
// value matches every non-rejected paper in the catalog.
type Query struct {
	// Venues restricts results to these venue identifiers. Empty means all
	// venues; unknown names are ignored.
	Venues []string

	// YearFrom and YearTo bound the year range inclusively. Zero leaves
	// that side unbounded.
	YearFrom int
	YearTo   int

	// Keyword holds the search terms, comma or space separated. Matching
	// is a case-insensitive substring test.
	Keyword string

	// Mode combines multiple terms: MatchAny (default) or MatchAll.
	Mode MatchMode

	// Fields restricts keyword matching to a subset of SearchFields.
	// Empty means the default set: title, abstract, keywords.
	Fields []string

	// IncludeRejected keeps withdrawn and rejected papers in the results.
	IncludeRejected bool

	// KeyFields constrains venue key fields (track, status, primary_area,
	// award, session) to specific values. A paper must match every
	// constrained field; an empty value set leaves the field unrestricted.
	KeyFields map[string][]string
}

// Terms splits the keyword string into individual lowercased terms.
func (q Query) Terms() []string {
	cleaned := strings.ReplaceAll(q.Keyword, ",", " ")
	fields := strings.Fields(strings.ToLower(cleaned))
	return fields
}

// Validate checks the query for contradictions before execution.
func (q Query) Validate() error {
	if q.YearFrom != 0 && q.YearTo != 0 && q.YearFrom > q.YearTo {
		return fmt.Errorf("invalid year range: %d > %d", q.YearFrom, q.YearTo)
	}
	switch q.Mode {
	case "", MatchAny, MatchAll:
	default:
		return fmt.Errorf("invalid match mode %q: use any or all", q.Mode)
	}
	for _, f := range q.Fields {
		if !validSearchField(f) {
			return fmt.Errorf("invalid search field %q: use one of %s",
				f, strings.Join(SearchFields, ", "))
		}
	}
	return nil
}

func validSearchField(name string) bool {
	for _, f := range SearchFields {
		if f == name {
			return true
		}
	}
	return false
}

// Filter returns the papers satisfying every constraint of q, in declared
// venue order and original per-venue load order. It is a pure function of
// (catalog, query): no mutation, identical output on identical input. An
// empty result is valid, not an error.
func (c *Catalog) Filter(q Query) ([]types.Paper, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(q.Venues))
	for _, v := range q.Venues {
		selected[v] = true
	}

	terms := q.Terms()
	fields := q.Fields
	if len(fields) == 0 {
		fields = defaultFields
	}

	results := []types.Paper{}
	for _, venue := range Venues {
		if len(selected) > 0 && !selected[venue] {
			continue
		}
		for _, p := range c.papers[venue] {
			if !q.IncludeRejected && rejectedStatuses[p.Status] {
				continue
			}
			if q.YearFrom != 0 && p.Year < q.YearFrom {
				continue
			}
			if q.YearTo != 0 && p.Year > q.YearTo {
				continue
			}
			if len(terms) > 0 && !matchKeywords(p, terms, fields, q.Mode) {
				continue
			}
			if !matchKeyFields(p, q.KeyFields) {
				continue
			}
			results = append(results, p)
		}
	}
	return results, nil
}

// matchKeywords applies the substring test over the selected fields.
func matchKeywords(p types.Paper, terms, fields []string, mode MatchMode) bool {
	var haystack strings.Builder
	for _, f := range fields {
		haystack.WriteString(fieldText(p, f))
		haystack.WriteByte('\n')
	}
	text := strings.ToLower(haystack.String())

	for _, term := range terms {
		found := strings.Contains(text, term)
		if mode == MatchAll && !found {
			return false
		}
		if mode != MatchAll && found {
			return true
		}
	}
	return mode == MatchAll
}

func fieldText(p types.Paper, field string) string {
	switch field {
	case "title":
		return p.Title
	case "abstract":
		return p.Abstract
	case "keywords":
		return p.Keywords
	case "authors":
		return strings.Join(p.Authors, "; ")
	}
	return ""
}

// matchKeyFields checks the per-field value constraints. Comparison is
// case-insensitive so boolean-derived values ("true"/"True") line up.
func matchKeyFields(p types.Paper, constraints map[string][]string) bool {
	for field, values := range constraints {
		if len(values) == 0 {
			continue
		}
		have := strings.ToLower(keyFieldValue(p, field))
		ok := false
		for _, v := range values {
			if strings.ToLower(v) == have {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func keyFieldValue(p types.Paper, field string) string {
	switch field {
	case "track":
		return p.Track
	case "status":
		return p.Status
	case "primary_area":
		return p.PrimaryArea
	case "award":
		return p.Award
	case "session", "sess":
		return p.Session
	}
	return ""
}
