// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-compass/pkg/types"
)

// rawPaper mirrors one dump record. The dumps are not uniform across
// venues: authors and keywords appear as arrays or delimited strings,
// year as a number or string, and award as a string or boolean.
type rawPaper struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Authors     stringList `json:"author"`
	AuthorsAlt  stringList `json:"authors"`
	Year        flexInt    `json:"year"`
	Abstract    string     `json:"abstract"`
	Keywords    joined     `json:"keywords"`
	Status      flexString `json:"status"`
	Track       string     `json:"track"`
	PrimaryArea string     `json:"primary_area"`
	Award       flexString `json:"award"`
	Session     flexString `json:"session"`
	Sess        flexString `json:"sess"`
	Link        string     `json:"link"`
	Site        string     `json:"site"`
}

// parseDump parses one venue dump into Paper records. The top level may be
// a JSON array of records or an object keyed by record ID. Records that
// fail to parse or carry no title are skipped and counted, not fatal.
func parseDump(data []byte, venue string, fileYear int) ([]types.Paper, int, error) {
	raws, err := splitRecords(data)
	if err != nil {
		return nil, 0, err
	}

	var papers []types.Paper
	skipped := 0
	for _, raw := range raws {
		var rp rawPaper
		if err := json.Unmarshal(raw.body, &rp); err != nil {
			skipped++
			continue
		}
		if strings.TrimSpace(rp.Title) == "" {
			skipped++
			continue
		}
		papers = append(papers, rp.toPaper(venue, fileYear, raw.id, len(papers)))
	}
	return papers, skipped, nil
}

type rawRecord struct {
	id   string
	body json.RawMessage
}

// splitRecords yields the individual records of a dump in a stable order:
// source order for arrays, sorted key order for ID-keyed objects.
func splitRecords(data []byte) ([]rawRecord, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		records := make([]rawRecord, 0, len(list))
		for _, body := range list {
			records = append(records, rawRecord{body: body})
		}
		return records, nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("top level is neither an array nor an object: %w", err)
	}
	ids := make([]string, 0, len(keyed))
	for id := range keyed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	records := make([]rawRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, rawRecord{id: id, body: keyed[id]})
	}
	return records, nil
}

func (rp rawPaper) toPaper(venue string, fileYear int, keyID string, seq int) types.Paper {
	authors := rp.Authors
	if len(authors) == 0 {
		authors = rp.AuthorsAlt
	}

	year := int(rp.Year)
	if year == 0 {
		year = fileYear
	}

	id := rp.ID
	if id == "" {
		id = keyID
	}
	if id == "" {
		id = fmt.Sprintf("%s-%d-%d", venue, year, seq+1)
	}

	session := string(rp.Session)
	if session == "" {
		session = string(rp.Sess)
	}

	link := rp.Link
	if link == "" {
		link = rp.Site
	}

	return types.Paper{
		ID:          id,
		Title:       strings.TrimSpace(rp.Title),
		Authors:     authors,
		Venue:       venue,
		Year:        year,
		Abstract:    rp.Abstract,
		Keywords:    string(rp.Keywords),
		Status:      string(rp.Status),
		Track:       rp.Track,
		PrimaryArea: rp.PrimaryArea,
		Award:       string(rp.Award),
		Session:     session,
		Link:        link,
	}
}

// yearFromName extracts the first 4-digit run from a dump file name
// (e.g. "iclr2025.json" → 2025). Returns 0 when none is present.
func yearFromName(name string) int {
	for i := 0; i+4 <= len(name); i++ {
		if !isDigit(name[i]) {
			continue
		}
		j := i
		for j < len(name) && isDigit(name[j]) {
			j++
		}
		if j-i == 4 {
			year, _ := strconv.Atoi(name[i:j])
			return year
		}
		i = j
	}
	return 0
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// stringList accepts a JSON array of strings or a single delimited string
// (";" or "," separated, as the older dumps use).
type stringList []string

func (s *stringList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*s = list
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	sep := ";"
	if !strings.Contains(one, ";") {
		sep = ","
	}
	var out []string
	for _, part := range strings.Split(one, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*s = out
	return nil
}

// joined accepts a JSON array or a string and yields a comma-joined string.
type joined string

func (j *joined) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*j = joined(strings.Join(list, ", "))
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*j = joined(one)
	return nil
}

// flexString accepts a JSON string, boolean, or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*f = flexString(one)
		return nil
	}
	var boolean bool
	if err := json.Unmarshal(b, &boolean); err == nil {
		*f = flexString(strconv.FormatBool(boolean))
		return nil
	}
	var num float64
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*f = flexString(strconv.FormatFloat(num, 'f', -1, 64))
	return nil
}

// flexInt accepts a JSON number or a numeric string. Unparsable values
// decode to 0 so the file-name year applies.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var num int
	if err := json.Unmarshal(b, &num); err == nil {
		*f = flexInt(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*f = 0
		return nil
	}
	num, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(num)
	return nil
}
