// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

type direction string

const (
	directionBefore direction = "before"
	directionAfter  direction = "after"
)

// misplaced describes an entry that has to move next to target.
type misplaced struct {
	entry  int
	target int
	dir    direction
}

// findOutOfOrder returns the indexes of all ranks that are lower than
// the highest rank seen before them.
func findOutOfOrder(ranks []Rank) []int {
	result := []int{}
	if len(ranks) == 0 {
		return result
	}

	highest := ranks[0]
	for idx, rank := range ranks {
		if rank.Less(highest) {
			result = append(result, idx)
		}

		if highest.Less(rank) {
			highest = rank
		}
	}

	return result
}

// findMisplaced scans the ranks front to back and, negated, back to front,
// and uses whichever scan yields fewer misplaced entries. Indexes in the
// result always refer to the given slice.
func findMisplaced(ranks []Rank) []misplaced {
	forward := findOutOfOrder(ranks)
	if len(forward) == 0 {
		return nil
	}

	n := len(ranks)
	reversed := make([]Rank, n)
	for i, rank := range ranks {
		reversed[n-1-i] = rank.negate()
	}

	backward := findOutOfOrder(reversed)
	if len(backward) < len(forward) {
		result := make([]misplaced, 0, len(backward))
		for _, idx := range backward {
			result = append(result, misplaced{
				entry:  n - 1 - idx,
				target: n - 1 - firstHigher(reversed, reversed[idx]),
				dir:    directionAfter,
			})
		}

		return result
	}

	result := make([]misplaced, 0, len(forward))
	for _, idx := range forward {
		result = append(result, misplaced{
			entry:  idx,
			target: firstHigher(ranks, ranks[idx]),
			dir:    directionBefore,
		})
	}

	return result
}

// firstHigher returns the index of the first rank higher than the given one.
// For out-of-order ranks there is always one.
func firstHigher(ranks []Rank, rank Rank) int {
	for idx, r := range ranks {
		if rank.Less(r) {
			return idx
		}
	}

	return -1
}
