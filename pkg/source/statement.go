// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package source

type StatementKind int

const (
	StatementOther StatementKind = iota
	StatementImport
	StatementVariable
)

func (k StatementKind) String() string {
	switch k {
	case StatementImport:
		return "import"
	case StatementVariable:
		return "variable"
	default:
		return "other"
	}
}

// ImportKind distinguishes value imports from TypeScript's type-only imports.
type ImportKind int

const (
	ImportValue ImportKind = iota
	ImportType
)

// Statement is one top-level statement of a file.
type Statement struct {
	Span
	Kind StatementKind

	// Index is the position among the file's top-level statements,
	// StartLine and EndLine are 1-based. All three are set by NewFile.
	Index     int
	StartLine int
	EndLine   int

	// Specifier, Bindings and ImportKind are only set for imports.
	Specifier  string
	Bindings   int
	ImportKind ImportKind

	// PlainRequire is set for `var x = require('literal')` declarations
	// with exactly one declarator.
	PlainRequire bool
}

// RequireCall is a static `require('literal')` call found anywhere in a file.
type RequireCall struct {
	Span
	Specifier string

	// InDeclarator is true if the call is part of a variable declarator.
	InDeclarator bool

	// Statement is the top-level statement containing the call.
	Statement *Statement
}

// Visitor receives callbacks from a host while it traverses a syntax tree.
// EnterScope/ExitScope bracket function bodies, blocks and object literals.
type Visitor interface {
	EnterScope()
	ExitScope()
	ImportDeclaration(stmt *Statement)
	RequireCall(call *RequireCall)
}
