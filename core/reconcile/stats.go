// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package reconcile

import (
	"fmt"
	"math"

	"codeberg.org/pixivfe/i18ntidy/core/catalog"
)

// Stats summarizes one language of a run.
type Stats struct {
	Lang    string
	Total   int
	New     int
	Updated int
	Deleted int

	// Empty counts entries whose value is the empty string, Null those stored as null.
	Empty int
	Null  int

	// NullEmpty selects Null as the incomplete count instead of Empty.
	NullEmpty bool
}

// Aggregate computes the statistics of one language. Total counts the keys
// of the existing catalog; empty and null values are counted in merged.
func Aggregate(lang string, existing, merged catalog.Flat, counts catalog.Counts, nullEmpty bool) Stats {
	s := Stats{
		Lang:      lang,
		Total:     len(existing),
		New:       counts.New,
		Updated:   counts.Updated,
		Deleted:   counts.Deleted,
		NullEmpty: nullEmpty,
	}

	for _, v := range merged {
		switch {
		case v.Null:
			s.Null++
		case v.Text == "":
			s.Empty++
		}
	}

	return s
}

// Incomplete returns the number of entries without a value in the active mode.
func (s Stats) Incomplete() int {
	if s.NullEmpty {
		return s.Null
	}

	return s.Empty
}

// Percentage returns the rounded ratio of incomplete entries to Total. It
// exceeds 100 when more keys are incomplete than were stored, and is 100 when
// no catalog existed.
func (s Stats) Percentage() int {
	if s.Total == 0 {
		return 100
	}

	return int(math.Round(float64(s.Incomplete()) / float64(s.Total) * 100))
}

// Kind names the incomplete count: "null" or "empty".
func (s Stats) Kind() string {
	if s.NullEmpty {
		return "null"
	}

	return "empty"
}

// String formats s as a single report line.
func (s Stats) String() string {
	return fmt.Sprintf("Statistics : %s: %d (%d%%) / Updated: %d / Deleted: %d / New: %d",
		s.Kind(), s.Incomplete(), s.Percentage(), s.Updated, s.Deleted, s.New)
}

