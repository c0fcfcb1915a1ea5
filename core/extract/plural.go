// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"errors"
	"strings"
)

var (
	errNotArrayLiteral  = errors.New("not a bracketed array literal")
	errUnquotedElement  = errors.New("array element is not a quoted string")
	errUnterminated     = errors.New("unterminated string in array literal")
	errMissingSeparator = errors.New("expected ',' between array elements")
)

// minPluralForms is the number of forms (one, other) needed to build a plural message.
const minPluralForms = 2

// pluralDefault builds an ICU plural message from the array literal captured
// in a plural-extract attribute:
//
//	['one item', '{{n}} items', 'suffix'] -> {NB, plural, one{one item} other{{{n}} items} suffix}
//
// It returns an empty string when forms is not a literal array of at least two strings.
func pluralDefault(forms string) string {
	elems, err := parseStringArray(forms)
	if err != nil || len(elems) < minPluralForms {
		return ""
	}

	var b strings.Builder

	b.WriteString("{NB, plural, one{")
	b.WriteString(elems[0])
	b.WriteString("} other{")
	b.WriteString(elems[1])
	b.WriteString("}")

	if len(elems) > minPluralForms && elems[2] != "" {
		b.WriteString(" ")
		b.WriteString(elems[2])
	}

	b.WriteString("}")

	return b.String()
}

// parseStringArray parses a bracketed, comma-separated list of single or double
// quoted strings, for example ['a', "b",]. Anything else is rejected; the input
// is never evaluated.
func parseStringArray(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, errNotArrayLiteral
	}

	body := s[1 : len(s)-1]
	out := []string{}

	i := skipSpaces(body, 0)
	for i < len(body) {
		quote := body[i]
		if quote != '\'' && quote != '"' {
			return nil, errUnquotedElement
		}

		var (
			b      strings.Builder
			closed bool
		)

		for i++; i < len(body); i++ {
			c := body[i]

			if c == '\\' && i+1 < len(body) {
				i++

				b.WriteByte(unescapeByte(body[i]))

				continue
			}

			if c == quote {
				closed = true
				i++

				break
			}

			b.WriteByte(c)
		}

		if !closed {
			return nil, errUnterminated
		}

		out = append(out, b.String())

		i = skipSpaces(body, i)
		if i == len(body) {
			break
		}

		if body[i] != ',' {
			return nil, errMissingSeparator
		}

		// A trailing comma is accepted.
		i = skipSpaces(body, i+1)
	}

	return out, nil
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}

	return i
}
