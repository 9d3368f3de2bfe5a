// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

// Package source is the host-neutral view of a parsed JavaScript/TypeScript
// file: the immutable text, its top-level statements and the stream of
// leaf tokens and comments. The ordering engine only ever talks to this
// package, never to a concrete parser.
package source

import (
	"sort"
	"strings"
)

// Span is a half-open byte range [Start, End) into the file text.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

type TokenKind int

const (
	TokenCode TokenKind = iota
	TokenLineComment
	TokenBlockComment
)

// Token is a leaf of the syntax tree, either code or a comment.
// Lines are 1-based and filled in by NewFile.
type Token struct {
	Span
	Kind      TokenKind
	StartLine int
	EndLine   int
}

func (t Token) IsComment() bool {
	return t.Kind == TokenLineComment || t.Kind == TokenBlockComment
}

type File struct {
	text       string
	lineStarts []int
	statements []*Statement
	tokens     []Token
}

// NewFile builds a File and computes line numbers for all statements
// and tokens. Tokens are sorted by their start offset.
func NewFile(text string, statements []*Statement, tokens []Token) *File {
	f := &File{
		text:       text,
		lineStarts: []int{0},
		statements: statements,
		tokens:     tokens,
	}

	for i, c := range text {
		if c == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}

	sort.SliceStable(f.tokens, func(i, j int) bool {
		return f.tokens[i].Start < f.tokens[j].Start
	})

	for i := range f.tokens {
		f.tokens[i].StartLine, f.tokens[i].EndLine = f.lines(f.tokens[i].Span)
	}

	for i, stmt := range f.statements {
		stmt.Index = i
		stmt.StartLine, stmt.EndLine = f.lines(stmt.Span)
	}

	return f
}

func (f *File) Text() string {
	return f.text
}

func (f *File) Statements() []*Statement {
	return f.statements
}

func (f *File) Tokens() []Token {
	return f.tokens
}

func (f *File) Slice(start, end int) string {
	return f.text[start:end]
}

// Position returns the 1-based line and column of a byte offset.
func (f *File) Position(offset int) (int, int) {
	line := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	})

	return line, offset - f.lineStarts[line-1] + 1
}

func (f *File) LineCount() int {
	return len(f.lineStarts)
}

// Line returns the content of a 1-based line without its line break.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}

	start := f.lineStarts[n-1]
	end := len(f.text)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}

	return strings.TrimSuffix(f.text[start:end], "\r")
}

// lines returns the line of the first and of the last character of a span.
func (f *File) lines(s Span) (int, int) {
	startLine, _ := f.Position(s.Start)

	last := s.End - 1
	if last < s.Start {
		last = s.Start
	}
	endLine, _ := f.Position(last)

	return startLine, endLine
}

// TokenOrCommentAfter returns the first token or comment starting at or
// after the given offset.
func (f *File) TokenOrCommentAfter(offset int) (Token, bool) {
	idx := sort.Search(len(f.tokens), func(i int) bool {
		return f.tokens[i].Start >= offset
	})
	if idx == len(f.tokens) {
		return Token{}, false
	}

	return f.tokens[idx], true
}

// TokenOrCommentBefore returns the last token or comment ending at or
// before the given offset.
func (f *File) TokenOrCommentBefore(offset int) (Token, bool) {
	idx := sort.Search(len(f.tokens), func(i int) bool {
		return f.tokens[i].End > offset
	})
	if idx == 0 {
		return Token{}, false
	}

	return f.tokens[idx-1], true
}

// TokensOrCommentsAfter returns up to count tokens following the span.
func (f *File) TokensOrCommentsAfter(s Span, count int) []Token {
	result := []Token{}
	offset := s.End

	for i := 0; i < count; i++ {
		tok, ok := f.TokenOrCommentAfter(offset)
		if !ok {
			break
		}

		result = append(result, tok)
		offset = tok.End
	}

	return result
}

// TokensOrCommentsBefore returns up to count tokens preceding the span,
// in source order.
func (f *File) TokensOrCommentsBefore(s Span, count int) []Token {
	result := []Token{}
	offset := s.Start

	for i := 0; i < count; i++ {
		tok, ok := f.TokenOrCommentBefore(offset)
		if !ok {
			break
		}

		result = append(result, tok)
		offset = tok.Start
	}

	// reverse into source order
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result
}
