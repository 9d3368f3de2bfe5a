// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// alphabetize assigns sub-ranks to the entries of every group so that
// they sort by name. The group rank itself is never changed.
func alphabetize(entries []*Entry, order AlphabetizeOrder, ignoreCase bool) {
	if order != OrderAsc && order != OrderDesc {
		return
	}

	groups := map[int][]*Entry{}
	for _, entry := range entries {
		groups[entry.Rank.Group] = append(groups[entry.Rank.Group], entry)
	}

	compare := func(a, b string) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}

	if ignoreCase {
		collator := collate.New(language.Und, collate.IgnoreCase)
		compare = collator.CompareString
	}

	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return compare(group[i].Name, group[j].Name) < 0
		})

		// equal names share a sub-rank, so duplicates are never out of order
		subs := make([]int, len(group))
		for i := 1; i < len(group); i++ {
			subs[i] = subs[i-1]
			if compare(group[i-1].Name, group[i].Name) != 0 {
				subs[i]++
			}
		}

		last := subs[len(subs)-1]
		for i, entry := range group {
			entry.Rank.Sub = subs[i]
			if order == OrderDesc {
				entry.Rank.Sub = last - subs[i]
			}
		}
	}
}
