package utils

import "strings"

// RankOrder lists room ranks from weakest to strongest. A user's rank is the
// single character the server prefixes to their name in a room.
const RankOrder = " +%@*#&~"

// RankIndex returns the position of a rank character in the ladder, or -1 for
// an unknown rank.
func RankIndex(rank string) int {
	if rank == "" {
		return -1
	}
	return strings.Index(RankOrder, rank[:1])
}

// RankAtLeast reports whether rank is at least as strong as min.
func RankAtLeast(rank, min string) bool {
	ri, mi := RankIndex(rank), RankIndex(min)
	return ri >= 0 && mi >= 0 && ri >= mi
}
