// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package jsparse

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unescape decodes the escape sequences of a JavaScript string literal
// body (without its quotes). Invalid sequences are kept verbatim.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder

	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i+1:])
		next := i + 1 + size

		switch r {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)

		// line continuations
		case '\n', '\u2028', '\u2029':
		case '\r':
			if next < len(s) && s[next] == '\n' {
				next++
			}

		case 'x':
			if code, ok := parseHex(s, next, 2); ok {
				b.WriteRune(rune(code))
				next += 2
			} else {
				b.WriteString(s[i:next])
			}

		case 'u':
			code, end, ok := parseUnicodeEscape(s, next)
			if !ok {
				b.WriteString(s[i:next])
				break
			}

			// surrogate pairs are written as two consecutive \u escapes
			if utf16.IsSurrogate(rune(code)) && end+1 < len(s) && s[end] == '\\' && s[end+1] == 'u' {
				if low, lowEnd, ok := parseUnicodeEscape(s, end+2); ok {
					if pair := utf16.DecodeRune(rune(code), rune(low)); pair != utf8.RuneError {
						b.WriteRune(pair)
						next = lowEnd
						break
					}
				}
			}

			b.WriteRune(rune(code))
			next = end

		default:
			b.WriteRune(r)
		}

		i = next
	}

	return b.String()
}

// parseUnicodeEscape parses the part after `\u`, either four hex digits
// or a code point in braces.
func parseUnicodeEscape(s string, start int) (uint64, int, bool) {
	if start < len(s) && s[start] == '{' {
		end := strings.IndexByte(s[start:], '}')
		if end < 2 {
			return 0, 0, false
		}

		code, err := strconv.ParseUint(s[start+1:start+end], 16, 32)
		if err != nil || code > utf8.MaxRune {
			return 0, 0, false
		}

		return code, start + end + 1, true
	}

	code, ok := parseHex(s, start, 4)

	return code, start + 4, ok
}

func parseHex(s string, start, digits int) (uint64, bool) {
	if start+digits > len(s) {
		return 0, false
	}

	code, err := strconv.ParseUint(s[start:start+digits], 16, 32)
	if err != nil {
		return 0, false
	}

	return code, true
}
