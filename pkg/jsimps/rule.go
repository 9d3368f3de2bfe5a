// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"fmt"
	"sort"

	"go.xrstf.de/jsimps/pkg/source"
)

// Diagnostic is a single problem found in a file. Fix is nil if the
// problem cannot be fixed automatically.
type Diagnostic struct {
	Message string
	Offset  int
	Line    int
	Column  int
	Fix     *source.Edit

	// ordering is set for misplaced imports, as opposed to spacing problems
	ordering bool
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Program is a parsed file as provided by the host parser.
type Program interface {
	File() *source.File
	Walk(v source.Visitor)
}

// Rule is a validated configuration, ready to check any number of files.
// It holds no per-file state and can be shared.
type Rule struct {
	config     Config
	ranks      *RankTable
	classifier *Classifier
}

func NewRule(config *Config) (*Rule, error) {
	c := *config
	setDefaults(&c)

	if err := validate(&c); err != nil {
		return nil, err
	}

	ranks, err := BuildRankTable(c.Groups)
	if err != nil {
		return nil, err
	}

	return &Rule{
		config:     c,
		ranks:      ranks,
		classifier: NewClassifier(ranks.regexGroups, listsGroup(c.Groups, GroupType)),
	}, nil
}

// configurationDiagnostic reports a broken configuration at the top of a file.
func configurationDiagnostic(err *ConfigurationError) Diagnostic {
	return Diagnostic{
		Message: err.Message,
		Line:    1,
		Column:  1,
	}
}

func (r *Rule) isAllowedImport(stmt *source.Statement) bool {
	return stmt.Kind == source.StatementImport && (stmt.Bindings > 0 || r.config.UnassignedImports == UnassignedAllow)
}

func (r *Rule) canCross(stmt *source.Statement) bool {
	return stmt.PlainRequire || r.isAllowedImport(stmt)
}

// fileCheck is the state of checking one file.
type fileCheck struct {
	rule        *Rule
	file        *source.File
	entries     []*Entry
	diagnostics []Diagnostic
}

// Check registers all top-level imports and requires of the program and
// reports ordering and spacing problems.
func (r *Rule) Check(prog Program) []Diagnostic {
	reg := newRegistry(r)
	prog.Walk(reg)

	c := &fileCheck{
		rule:    r,
		file:    prog.File(),
		entries: reg.entries,
	}

	alphabetize(c.entries, r.config.Alphabetize.Order, r.config.Alphabetize.IgnoreCase)

	c.checkOrder()
	c.checkNewlines(r.config.NewlinesBetween)

	sort.SliceStable(c.diagnostics, func(i, j int) bool {
		return c.diagnostics[i].Offset < c.diagnostics[j].Offset
	})

	return c.diagnostics
}

func (c *fileCheck) report(entry *Entry, message string, fix source.Edit, fixable bool) {
	line, col := c.file.Position(entry.Anchor.Start)

	d := Diagnostic{
		Message: message,
		Offset:  entry.Anchor.Start,
		Line:    line,
		Column:  col,
	}

	if fixable {
		d.Fix = &fix
	}

	c.diagnostics = append(c.diagnostics, d)
}

func (c *fileCheck) checkOrder() {
	ranks := make([]Rank, len(c.entries))
	for i, entry := range c.entries {
		ranks[i] = entry.Rank
	}

	for _, m := range findMisplaced(ranks) {
		entry := c.entries[m.entry]
		target := c.entries[m.target]

		message := fmt.Sprintf("`%s` import should occur %s import of `%s`", entry.Name, m.dir, target.Name)

		if !c.canReorder(entry.Statement, target.Statement) {
			c.report(entry, message, source.Edit{}, false)
		} else {
			c.report(entry, message, moveStatementEdit(c.file, target.Statement, entry.Statement, m.dir), true)
		}

		c.diagnostics[len(c.diagnostics)-1].ordering = true
	}
}

// canReorder is false if moving one statement next to the other would
// require moving anything but imports and requires.
func (c *fileCheck) canReorder(a, b *source.Statement) bool {
	if a == b {
		return false
	}

	lo, hi := a.Index, b.Index
	if lo > hi {
		lo, hi = hi, lo
	}

	stmts := c.file.Statements()
	for i := lo + 1; i < hi; i++ {
		if !c.rule.canCross(stmts[i]) {
			return false
		}
	}

	return true
}
