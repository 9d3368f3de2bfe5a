// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

// Package jsparse parses JavaScript and TypeScript with tree-sitter and
// exposes the result as a source.File plus a visitor-driven walk.
package jsparse

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"go.xrstf.de/jsimps/pkg/source"
)

type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

var extensions = map[string]Language{
	".js":  JavaScript,
	".jsx": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

// LanguageForFile determines the grammar based on the file extension.
func LanguageForFile(filename string) (Language, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(filename))]
	return lang, ok
}

func (l Language) grammar() (*sitter.Language, error) {
	switch l {
	case JavaScript:
		return javascript.GetLanguage(), nil
	case TypeScript:
		return typescript.GetLanguage(), nil
	case TSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language %q", l)
	}
}

// Program is a parsed file.
type Program struct {
	content []byte
	root    *sitter.Node
	file    *source.File

	// top-level statements, keyed by their start offset
	statements map[uint32]*source.Statement
}

func Parse(ctx context.Context, content []byte, lang Language) (*Program, error) {
	grammar, err := lang.grammar()
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}
	if tree == nil {
		return nil, errors.New("failed to parse file: no syntax tree")
	}

	p := &Program{
		content:    content,
		root:       tree.RootNode(),
		statements: map[uint32]*source.Statement{},
	}

	stmts := []*source.Statement{}
	for i := 0; i < int(p.root.NamedChildCount()); i++ {
		child := p.root.NamedChild(i)
		if isComment(child) || child.Type() == "hash_bang_line" {
			continue
		}

		stmt := p.newStatement(child)
		p.statements[child.StartByte()] = stmt
		stmts = append(stmts, stmt)
	}

	p.file = source.NewFile(string(content), stmts, p.collectTokens())

	return p, nil
}

func (p *Program) File() *source.File {
	return p.file
}

// Walk traverses the whole tree depth-first and reports scopes, import
// declarations and static require calls to the visitor.
func (p *Program) Walk(v source.Visitor) {
	for i := 0; i < int(p.root.ChildCount()); i++ {
		child := p.root.Child(i)

		stmt, ok := p.statements[child.StartByte()]
		if !ok {
			continue
		}

		p.walk(child, stmt, false, v)
	}
}

func (p *Program) walk(node *sitter.Node, stmt *source.Statement, inDeclarator bool, v source.Visitor) {
	nodeType := node.Type()

	switch {
	case nodeType == "import_statement" && stmt.Kind == source.StatementImport:
		v.ImportDeclaration(stmt)

	case nodeType == "variable_declarator":
		inDeclarator = true

	case nodeType == "call_expression":
		if specifier, ok := p.staticRequire(node); ok {
			v.RequireCall(&source.RequireCall{
				Span:         nodeSpan(node),
				Specifier:    specifier,
				InDeclarator: inDeclarator,
				Statement:    stmt,
			})
		}
	}

	scope := opensScope(nodeType)
	if scope {
		v.EnterScope()
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.walk(node.Child(i), stmt, inDeclarator, v)
	}

	if scope {
		v.ExitScope()
	}
}

func opensScope(nodeType string) bool {
	switch nodeType {
	case "function_declaration", "function", "function_expression", "arrow_function",
		"generator_function", "generator_function_declaration",
		"statement_block", "object":
		return true
	}

	return false
}

func (p *Program) newStatement(node *sitter.Node) *source.Statement {
	stmt := &source.Statement{
		Span: nodeSpan(node),
		Kind: source.StatementOther,
	}

	switch node.Type() {
	case "import_statement":
		src := node.ChildByFieldName("source")
		if src == nil || src.Type() != "string" {
			// e.g. TypeScript's `import x = require('y')`
			return stmt
		}

		stmt.Kind = source.StatementImport
		stmt.Specifier = p.stringValue(src)

		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)

			switch {
			case child.Type() == "import_clause":
				stmt.Bindings = countBindings(child)
			case child.Type() == "type" && !child.IsNamed():
				stmt.ImportKind = source.ImportType
			}
		}

	case "lexical_declaration", "variable_declaration":
		stmt.Kind = source.StatementVariable
		stmt.PlainRequire = p.isPlainRequire(node)
	}

	return stmt
}

// countBindings returns the number of names bound by an import clause.
func countBindings(clause *sitter.Node) int {
	count := 0

	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)

		switch child.Type() {
		case "identifier", "namespace_import":
			count++
		case "named_imports":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if child.NamedChild(j).Type() == "import_specifier" {
					count++
				}
			}
		}
	}

	return count
}

func (p *Program) isPlainRequire(decl *sitter.Node) bool {
	var declarators []*sitter.Node
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if child := decl.NamedChild(i); child.Type() == "variable_declarator" {
			declarators = append(declarators, child)
		}
	}

	if len(declarators) != 1 {
		return false
	}

	name := declarators[0].ChildByFieldName("name")
	value := declarators[0].ChildByFieldName("value")
	if name == nil || name.Type() != "identifier" || value == nil || value.Type() != "call_expression" {
		return false
	}

	_, ok := p.staticRequire(value)
	return ok
}

// staticRequire checks for `require('literal')` and returns the literal.
func (p *Program) staticRequire(call *sitter.Node) (string, bool) {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != "identifier" || callee.Content(p.content) != "require" {
		return "", false
	}

	args := call.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		return "", false
	}

	var literal *sitter.Node
	count := 0
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if isComment(arg) {
			continue
		}

		literal = arg
		count++
	}

	if count != 1 || literal.Type() != "string" {
		return "", false
	}

	return p.stringValue(literal), true
}

// stringValue returns the value of a string literal.
func (p *Program) stringValue(node *sitter.Node) string {
	content := node.Content(p.content)
	if len(content) < 2 {
		return ""
	}

	return unescape(content[1 : len(content)-1])
}

// collectTokens returns all non-empty leaves of the tree, comments included.
func (p *Program) collectTokens() []source.Token {
	tokens := []source.Token{}

	var collect func(node *sitter.Node)
	collect = func(node *sitter.Node) {
		if node.ChildCount() == 0 || isComment(node) {
			if node.EndByte() <= node.StartByte() {
				return
			}

			tok := source.Token{
				Span: nodeSpan(node),
				Kind: source.TokenCode,
			}

			if isComment(node) {
				tok.Kind = source.TokenBlockComment
				if strings.HasPrefix(node.Content(p.content), "//") {
					tok.Kind = source.TokenLineComment
				}
			}

			tokens = append(tokens, tok)
			return
		}

		for i := 0; i < int(node.ChildCount()); i++ {
			collect(node.Child(i))
		}
	}

	collect(p.root)

	return tokens
}

func isComment(node *sitter.Node) bool {
	return node.Type() == "comment" || node.Type() == "html_comment"
}

func nodeSpan(node *sitter.Node) source.Span {
	return source.Span{
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
	}
}
