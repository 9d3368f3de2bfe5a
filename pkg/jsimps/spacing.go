// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"strings"

	"go.xrstf.de/jsimps/pkg/source"
)

const (
	msgNewlineBetweenGroups  = "There should be at least one empty line between import groups"
	msgNewlineBetweenImports = "There should be at least one empty line between imports"
	msgNoNewlineWithinGroup  = "There should be no empty line within import group"
	msgNoNewlineBetween      = "There should be no empty line between import groups"
)

// emptyLinesBetween counts the blank lines between two statements.
func emptyLinesBetween(file *source.File, previous, current *source.Statement) int {
	count := 0

	for line := previous.EndLine + 1; line < current.StartLine; line++ {
		if strings.TrimSpace(file.Line(line)) == "" {
			count++
		}
	}

	return count
}

// checkNewlines walks all consecutive pairs of entries and reports
// missing or superfluous blank lines according to the policy.
func (c *fileCheck) checkNewlines(policy NewlinesBetween) {
	if policy == NewlinesIgnore || len(c.entries) < 2 {
		return
	}

	previous := c.entries[0]

	for _, current := range c.entries[1:] {
		if previous.Statement != current.Statement {
			c.checkNewlinesBetween(policy, previous, current)
		}

		previous = current
	}
}

func (c *fileCheck) checkNewlinesBetween(policy NewlinesBetween, previous, current *Entry) {
	emptyLines := emptyLinesBetween(c.file, previous.Statement, current.Statement)
	sameGroup := previous.Rank.Group == current.Rank.Group

	switch policy {
	case NewlinesAlways, NewlinesAlwaysAndInsideGroups:
		switch {
		case !sameGroup && emptyLines == 0:
			c.report(previous, msgNewlineBetweenGroups, insertNewlineEdit(c.file, previous.Statement), true)

		case sameGroup && emptyLines == 0 && policy == NewlinesAlwaysAndInsideGroups:
			c.report(previous, msgNewlineBetweenImports, insertNewlineEdit(c.file, previous.Statement), true)

		case sameGroup && emptyLines > 0 && policy == NewlinesAlways:
			edit, ok := removeNewlinesEdit(c.file, previous.Statement, current.Statement)
			c.report(previous, msgNoNewlineWithinGroup, edit, ok)
		}

	case NewlinesNever:
		if emptyLines > 0 {
			edit, ok := removeNewlinesEdit(c.file, previous.Statement, current.Statement)
			c.report(previous, msgNoNewlineBetween, edit, ok)
		}
	}
}
