// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"go.xrstf.de/jsimps/pkg/source"
)

// requireOffset is added to the rank of require() calls, so that within
// the same group import declarations always come first.
const requireOffset = 100

// Rank orders imports: first by Group (the slot rank, plus requireOffset
// for require calls), then by Sub, which the alphabetizer uses to order
// imports inside a group.
type Rank struct {
	Group int
	Sub   int
}

func (r Rank) Less(other Rank) bool {
	if r.Group != other.Group {
		return r.Group < other.Group
	}

	return r.Sub < other.Sub
}

func (r Rank) negate() Rank {
	return Rank{Group: -r.Group, Sub: -r.Sub}
}

// Entry is a single registered import or require.
type Entry struct {
	Name string
	Rank Rank

	// Statement is the top-level statement that gets moved around,
	// Anchor is where diagnostics are reported.
	Statement *source.Statement
	Anchor    source.Span
}

// registry collects the imports of one file while the host walks it.
// It is discarded after the file has been checked.
type registry struct {
	rule    *Rule
	depth   int
	entries []*Entry
}

var _ source.Visitor = &registry{}

func newRegistry(rule *Rule) *registry {
	return &registry{rule: rule}
}

func (r *registry) EnterScope() {
	r.depth++
}

func (r *registry) ExitScope() {
	r.depth--
}

func (r *registry) ImportDeclaration(stmt *source.Statement) {
	if r.depth != 0 || !r.rule.isAllowedImport(stmt) {
		return
	}

	r.register(stmt.Specifier, stmt.ImportKind, 0, stmt, stmt.Span)
}

func (r *registry) RequireCall(call *source.RequireCall) {
	if r.depth != 0 || !call.InDeclarator {
		return
	}

	r.register(call.Specifier, source.ImportValue, requireOffset, call.Statement, call.Span)
}

func (r *registry) register(name string, kind source.ImportKind, offset int, stmt *source.Statement, anchor source.Span) {
	group := r.rule.classifier.ClassifyImport(name, kind)

	rank, ok := r.rule.ranks.Rank(group)
	if !ok {
		return
	}

	r.entries = append(r.entries, &Entry{
		Name:      name,
		Rank:      Rank{Group: rank + offset},
		Statement: stmt,
		Anchor:    anchor,
	})
}
