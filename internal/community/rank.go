package community

import "strings"

// ranks is ordered most-specific first (§4.5).
var ranks = []string{
	"subspecies", "variety", "species", "genus", "family", "order", "class", "phylum", "kingdom",
}

// RankIndex returns rank's position in the most-specific-first ordering, or
// -1 if rank isn't recognized. Comparison is case-insensitive, matching how
// taxon ranks arrive from third-party data sources with inconsistent casing.
func RankIndex(rank string) int {
	rank = strings.ToLower(rank)
	for i, r := range ranks {
		if r == rank {
			return i
		}
	}
	return -1
}

// IsMoreSpecific reports whether rank a is more specific than rank b.
// Unrecognized ranks are never more specific than anything.
func IsMoreSpecific(a, b string) bool {
	ai, bi := RankIndex(a), RankIndex(b)
	if ai < 0 || bi < 0 {
		return false
	}
	return ai < bi
}
