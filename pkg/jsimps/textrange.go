// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsimps

import (
	"strings"
	"unicode"

	"go.xrstf.de/jsimps/pkg/source"
)

// the number of neighbouring tokens inspected for same-line comments
const commentLookaround = 100

// commentOnSameLineAs matches single-line comments that sit on the last
// line of the statement.
func commentOnSameLineAs(stmt *source.Statement) func(source.Token) bool {
	return func(tok source.Token) bool {
		return tok.IsComment() && tok.StartLine == tok.EndLine && tok.EndLine == stmt.EndLine
	}
}

func takeTokensAfterWhile(file *source.File, stmt *source.Statement, cond func(source.Token) bool) []source.Token {
	result := []source.Token{}

	for _, tok := range file.TokensOrCommentsAfter(stmt.Span, commentLookaround) {
		if !cond(tok) {
			break
		}
		result = append(result, tok)
	}

	return result
}

func takeTokensBeforeWhile(file *source.File, stmt *source.Statement, cond func(source.Token) bool) []source.Token {
	tokens := file.TokensOrCommentsBefore(stmt.Span, commentLookaround)
	first := len(tokens)

	for i := len(tokens) - 1; i >= 0; i-- {
		if !cond(tokens[i]) {
			break
		}
		first = i
	}

	return tokens[first:]
}

// endOfLineWithComments returns the end of the statement's trailing
// same-line comments.
func endOfLineWithComments(file *source.File, stmt *source.Statement) int {
	comments := takeTokensAfterWhile(file, stmt, commentOnSameLineAs(stmt))
	if len(comments) > 0 {
		return comments[len(comments)-1].End
	}

	return stmt.End
}

// findEndOfLineWithComments extends the statement over its trailing
// comments, trailing blanks and the line break.
func findEndOfLineWithComments(file *source.File, stmt *source.Statement) int {
	text := file.Text()
	end := endOfLineWithComments(file, stmt)
	result := end

	for i := end; i < len(text); i++ {
		if text[i] == '\n' {
			result = i + 1
			break
		}

		if text[i] != ' ' && text[i] != '\t' && text[i] != '\r' {
			break
		}

		result = i + 1
	}

	return result
}

// findStartOfLineWithComments extends the statement backwards over
// same-line comments in front of it and the indentation.
func findStartOfLineWithComments(file *source.File, stmt *source.Statement) int {
	text := file.Text()

	start := stmt.Start
	if comments := takeTokensBeforeWhile(file, stmt, commentOnSameLineAs(stmt)); len(comments) > 0 {
		start = comments[0].Start
	}

	result := start
	for i := start - 1; i >= 0; i-- {
		if text[i] != ' ' && text[i] != '\t' {
			break
		}
		result = i
	}

	return result
}

// moveStatementEdit builds the single replacement that moves the
// misplaced statement next to the target: in front of it for
// directionBefore, behind it for directionAfter. Blank lines at the edges
// of the replaced range stay inside it, so the code around the imports
// keeps its spacing.
func moveStatementEdit(file *source.File, target, moved *source.Statement, dir direction) source.Edit {
	text := file.Text()

	targetStart := findStartOfLineWithComments(file, target)
	targetEnd := findEndOfLineWithComments(file, target)
	movedStart := findStartOfLineWithComments(file, moved)
	movedEnd := findEndOfLineWithComments(file, moved)

	code := text[movedStart:movedEnd]

	// a statement at the very end of a file may lack its line break; the
	// break then moves to the statement that ends up in front
	if dir == directionBefore {
		between, blank := splitTrailingBlankLines(text[targetStart:movedStart])
		if !strings.HasSuffix(code, "\n") {
			code += "\n"
			between = strings.TrimSuffix(between, "\n")
		}

		return source.Replace(targetStart, movedEnd, code+blank+between)
	}

	blank, between := splitLeadingBlankLines(text[movedEnd:targetEnd])
	if !strings.HasSuffix(between, "\n") {
		between += "\n"
		code = strings.TrimSuffix(code, "\n")
	}

	return source.Replace(movedStart, targetEnd, between+blank+code)
}

func isNotSpace(r rune) bool {
	return !unicode.IsSpace(r)
}

// splitTrailingBlankLines cuts s after the line break that ends its last
// non-blank line.
func splitTrailingBlankLines(s string) (string, string) {
	last := strings.LastIndexFunc(s, isNotSpace)
	if last < 0 {
		return s, ""
	}

	nl := strings.IndexByte(s[last:], '\n')
	if nl < 0 {
		return s, ""
	}

	cut := last + nl + 1

	return s[:cut], s[cut:]
}

// splitLeadingBlankLines cuts s after the line break in front of its
// first non-blank line.
func splitLeadingBlankLines(s string) (string, string) {
	first := strings.IndexFunc(s, isNotSpace)
	if first < 0 {
		return "", s
	}

	nl := strings.LastIndexByte(s[:first], '\n')
	if nl < 0 {
		return "", s
	}

	return s[:nl+1], s[nl+1:]
}

// insertNewlineEdit adds a line break after the statement and its
// same-line comments.
func insertNewlineEdit(file *source.File, stmt *source.Statement) source.Edit {
	return source.InsertAt(endOfLineWithComments(file, stmt), "\n")
}

// removeNewlinesEdit removes the whitespace between two statements. If
// anything but whitespace sits between them, no edit is possible.
func removeNewlinesEdit(file *source.File, previous, current *source.Statement) (source.Edit, bool) {
	start := findEndOfLineWithComments(file, previous)
	end := findStartOfLineWithComments(file, current)

	if end < start || strings.TrimSpace(file.Slice(start, end)) != "" {
		return source.Edit{}, false
	}

	return source.Remove(start, end), true
}
