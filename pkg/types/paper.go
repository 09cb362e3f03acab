// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-compass catalog.
// See docs/ARCHITECTURE.md § Data Structures.
package types

// Paper holds the metadata for one catalog entry. Papers are immutable once
// loaded: a reload builds a new catalog rather than mutating records in place.
type Paper struct {
	// ID is the record identifier from the source dump, or a slug derived
	// from venue, year, and position when the dump carries none.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Venue is the conference identifier the paper was loaded under
	// (e.g. "cvpr", "iclr").
	Venue string `json:"venue" yaml:"venue"`

	// Year is the conference year, taken from the record when present and
	// otherwise inferred from the dump file name.
	Year int `json:"year" yaml:"year"`

	// Abstract is the paper abstract, when the dump carries one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords is a comma-joined keyword list.
	Keywords string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Status is the decision status (e.g. "Poster", "Oral", "Reject").
	Status string `json:"status,omitempty" yaml:"status,omitempty"`

	// Track is the submission track (e.g. "main", "datasets").
	Track string `json:"track,omitempty" yaml:"track,omitempty"`

	// PrimaryArea is the primary research area, where the venue records one.
	PrimaryArea string `json:"primary_area,omitempty" yaml:"primary_area,omitempty"`

	// Award is the award designation. Some dumps store this as a boolean;
	// it is normalized to a string on load.
	Award string `json:"award,omitempty" yaml:"award,omitempty"`

	// Session is the presentation session, where the venue records one.
	Session string `json:"session,omitempty" yaml:"session,omitempty"`

	// Link is the paper landing page or PDF URL.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}
