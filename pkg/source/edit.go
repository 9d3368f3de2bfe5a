// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package source

import (
	"sort"
	"strings"
)

// Edit replaces the text in Span with Text. An empty span is an insertion,
// an empty Text a deletion.
type Edit struct {
	Span
	Text string
}

func Replace(start, end int, text string) Edit {
	return Edit{Span: Span{Start: start, End: end}, Text: text}
}

func InsertAt(offset int, text string) Edit {
	return Replace(offset, offset, text)
}

func Remove(start, end int) Edit {
	return Replace(start, end, "")
}

// ApplyEdits applies all edits that do not touch or overlap an edit
// applied before them (edits are considered in order of their start
// offset). It returns the new text and the number of applied edits;
// skipped edits are expected to be recomputed on the new text.
func ApplyEdits(text string, edits []Edit) (string, int) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var out strings.Builder
	out.Grow(len(text))

	applied := 0
	lastEnd := -1

	for _, edit := range sorted {
		if edit.Start <= lastEnd || edit.Start < 0 || edit.End > len(text) || edit.End < edit.Start {
			continue
		}

		if lastEnd < 0 {
			out.WriteString(text[:edit.Start])
		} else {
			out.WriteString(text[lastEnd:edit.Start])
		}

		out.WriteString(edit.Text)
		lastEnd = edit.End
		applied++
	}

	if applied == 0 {
		return text, 0
	}

	out.WriteString(text[lastEnd:])

	return out.String(), applied
}
