package catalog

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paper-compass/pkg/types"
)

// testCatalog builds an in-memory catalog without touching disk.
func testCatalog(papers ...types.Paper) *Catalog {
	c := &Catalog{papers: make(map[string][]types.Paper)}
	for _, p := range papers {
		if _, ok := c.papers[p.Venue]; !ok {
			c.loaded = append(c.loaded, p.Venue)
		}
		c.papers[p.Venue] = append(c.papers[p.Venue], p)
	}
	return c
}

func titles(papers []types.Paper) []string {
	out := make([]string, len(papers))
	for i, p := range papers {
		out[i] = p.Title
	}
	return out
}

var fixture = []types.Paper{
	{Title: "A Study of X", Venue: "cvpr", Year: 2021, Keywords: "vision"},
	{Title: "Scene Graphs Revisited", Venue: "cvpr", Year: 2022, Abstract: "graphs for scenes"},
	{Title: "Y Networks", Venue: "iclr", Year: 2022, Keywords: "networks, optimization"},
	{Title: "Withdrawn Thing", Venue: "iclr", Year: 2022, Status: "Withdraw"},
	{Title: "Old AAAI Paper", Venue: "aaai", Year: 2019},
}

// --- Validate ---

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{"empty", Query{}, false},
		{"valid range", Query{YearFrom: 2020, YearTo: 2022}, false},
		{"open-ended from", Query{YearFrom: 2020}, false},
		{"open-ended to", Query{YearTo: 2020}, false},
		{"inverted range", Query{YearFrom: 2023, YearTo: 2020}, true},
		{"bad mode", Query{Mode: "fuzzy"}, true},
		{"bad field", Query{Fields: []string{"venue"}}, true},
		{"good fields", Query{Fields: []string{"title", "authors"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilterDeclinesInvalidQuery(t *testing.T) {
	c := testCatalog(fixture...)
	if _, err := c.Filter(Query{YearFrom: 2024, YearTo: 2020}); err == nil {
		t.Fatal("Filter() error = nil, want validation error for inverted year range")
	}
}

// --- ordering and completeness ---

func TestFilterEmptyQueryReturnsAllInOrder(t *testing.T) {
	c := testCatalog(fixture...)

	papers, err := c.Filter(Query{IncludeRejected: true})
	if err != nil {
		t.Fatal(err)
	}

	// Declared venue order (aaai before cvpr before iclr), original
	// per-venue insertion order.
	want := []string{"Old AAAI Paper", "A Study of X", "Scene Graphs Revisited", "Y Networks", "Withdrawn Thing"}
	if got := titles(papers); !reflect.DeepEqual(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}
}

func TestFilterIdempotent(t *testing.T) {
	c := testCatalog(fixture...)
	q := Query{Keyword: "networks", Venues: []string{"iclr"}}

	first, err := c.Filter(q)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Filter(q)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Filter() calls disagree: %v vs %v", titles(first), titles(second))
	}
}

// --- constraints ---

func TestFilterByVenue(t *testing.T) {
	c := testCatalog(fixture...)

	papers, err := c.Filter(Query{Venues: []string{"cvpr"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A Study of X", "Scene Graphs Revisited"}
	if got := titles(papers); !reflect.DeepEqual(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}
}

func TestFilterUnknownVenueIgnored(t *testing.T) {
	c := testCatalog(fixture...)

	papers, err := c.Filter(Query{Venues: []string{"cvpr", "notaconf"}})
	if err != nil {
		t.Fatalf("Filter() error = %v, unknown venue must not be an error", err)
	}
	if len(papers) != 2 {
		t.Errorf("len = %d, want 2", len(papers))
	}
}

func TestFilterByKeyword(t *testing.T) {
	c := testCatalog(fixture...)

	papers, err := c.Filter(Query{Keyword: "network"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Y Networks"}
	if got := titles(papers); !reflect.DeepEqual(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}
}

func TestFilterKeywordCaseInsensitive(t *testing.T) {
	c := testCatalog(fixture...)

	papers, err := c.Filter(Query{Keyword: "SCENE graphs"})
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 1 || papers[0].Title != "Scene Graphs Revisited" {
		t.Errorf("titles = %v, want [Scene Graphs Revisited]", titles(papers))
	}
}

func TestFilterByYearRange(t *testing.T) {
	c := testCatalog(fixture...)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"bounded", Query{YearFrom: 2021, YearTo: 2021}, []string{"A Study of X"}},
		{"open from", Query{YearFrom: 2022}, []string{"Scene Graphs Revisited", "Y Networks"}},
		{"open to", Query{YearTo: 2019}, []string{"Old AAAI Paper"}},
		{"empty result", Query{YearFrom: 2023, YearTo: 2024}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			papers, err := c.Filter(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if got := titles(papers); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("titles = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterSoundness(t *testing.T) {
	c := testCatalog(fixture...)
	q := Query{Venues: []string{"cvpr", "iclr"}, YearFrom: 2022, Keyword: "graphs"}

	papers, err := c.Filter(q)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range papers {
		if p.Venue != "cvpr" && p.Venue != "iclr" {
			t.Errorf("paper %q from venue %q leaked through venue filter", p.Title, p.Venue)
		}
		if p.Year < 2022 {
			t.Errorf("paper %q year %d outside range", p.Title, p.Year)
		}
	}
	if len(papers) != 1 || papers[0].Title != "Scene Graphs Revisited" {
		t.Errorf("titles = %v, want exactly [Scene Graphs Revisited]", titles(papers))
	}
}

// --- match modes and fields ---

func TestFilterMatchModes(t *testing.T) {
	c := testCatalog(fixture...)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"any matches either term", Query{Keyword: "vision, networks"}, []string{"A Study of X", "Y Networks"}},
		{"all needs every term", Query{Keyword: "networks optimization", Mode: MatchAll}, []string{"Y Networks"}},
		{"all with miss is empty", Query{Keyword: "networks vision", Mode: MatchAll}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			papers, err := c.Filter(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if got := titles(papers); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("titles = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterFieldSelection(t *testing.T) {
	c := testCatalog(
		types.Paper{Title: "Plain Title", Venue: "cvpr", Year: 2021, Abstract: "mentions dragons"},
	)

	// Abstract matches by default.
	papers, err := c.Filter(Query{Keyword: "dragons"})
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 1 {
		t.Fatalf("default fields: len = %d, want 1", len(papers))
	}

	// Restricting to title excludes the abstract hit.
	papers, err = c.Filter(Query{Keyword: "dragons", Fields: []string{"title"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 0 {
		t.Errorf("title-only: len = %d, want 0", len(papers))
	}
}

func TestFilterAuthorsOptIn(t *testing.T) {
	c := testCatalog(
		types.Paper{Title: "Some Paper", Venue: "cvpr", Year: 2021, Authors: []string{"Grace Hopper"}},
	)

	papers, err := c.Filter(Query{Keyword: "hopper"})
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 0 {
		t.Errorf("authors matched by default: len = %d, want 0", len(papers))
	}

	papers, err = c.Filter(Query{Keyword: "hopper", Fields: []string{"authors"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 1 {
		t.Errorf("authors field: len = %d, want 1", len(papers))
	}
}

// --- status and key fields ---

func TestFilterExcludesRejectedByDefault(t *testing.T) {
	c := testCatalog(fixture...)

	papers, err := c.Filter(Query{Venues: []string{"iclr"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(papers); !reflect.DeepEqual(got, []string{"Y Networks"}) {
		t.Errorf("titles = %v, want withdrawn paper excluded", got)
	}

	papers, err = c.Filter(Query{Venues: []string{"iclr"}, IncludeRejected: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 2 {
		t.Errorf("include-rejected: len = %d, want 2", len(papers))
	}
}

func TestFilterKeyFields(t *testing.T) {
	c := testCatalog(
		types.Paper{Title: "Main Track", Venue: "cvpr", Year: 2021, Track: "main", Status: "Poster"},
		types.Paper{Title: "Workshop Piece", Venue: "cvpr", Year: 2021, Track: "workshop", Status: "Poster"},
		types.Paper{Title: "Awarded", Venue: "acl", Year: 2021, Award: "true"},
	)

	papers, err := c.Filter(Query{KeyFields: map[string][]string{"track": {"main"}}})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(papers); !reflect.DeepEqual(got, []string{"Main Track"}) {
		t.Errorf("track filter: titles = %v, want [Main Track]", got)
	}

	// Boolean-derived award values compare case-insensitively.
	papers, err = c.Filter(Query{KeyFields: map[string][]string{"award": {"True"}}})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(papers); !reflect.DeepEqual(got, []string{"Awarded"}) {
		t.Errorf("award filter: titles = %v, want [Awarded]", got)
	}
}

// --- key-field summaries ---

func TestKeyFieldSummary(t *testing.T) {
	c := testCatalog(
		types.Paper{Title: "P1", Venue: "cvpr", Year: 2021, Track: "main", Status: "Poster"},
		types.Paper{Title: "P2", Venue: "cvpr", Year: 2021, Track: "workshop", Status: "Poster"},
		types.Paper{Title: "P3", Venue: "cvpr", Year: 2021, Track: "main", Status: "Oral"},
	)

	summary, err := c.KeyFieldSummary("cvpr")
	if err != nil {
		t.Fatal(err)
	}
	if got := summary["track"]; !reflect.DeepEqual(got, []string{"main", "workshop"}) {
		t.Errorf("track values = %v, want sorted unique [main workshop]", got)
	}
	if got := summary["status"]; !reflect.DeepEqual(got, []string{"Oral", "Poster"}) {
		t.Errorf("status values = %v, want [Oral Poster]", got)
	}
}

func TestKeyFieldSummaryUnknownVenue(t *testing.T) {
	c := testCatalog(fixture...)
	if _, err := c.KeyFieldSummary("notaconf"); err == nil {
		t.Fatal("KeyFieldSummary() error = nil, want error for unknown venue")
	}
}
