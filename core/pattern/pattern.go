// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package pattern declares the named extraction patterns that recognise translation
keys in template and script sources, and compiles them for a given pair of
interpolation delimiters.

Each [Pattern] carries the information needed to turn one of its matches into
translation keys: the source dialect it applies to, whether it is applied to
whole documents or re-applied to each of its whole matches ([Strategy]), and the
normalization variant ([Form]) along with any associated data.

Patterns are compiled once by [NewRegistry] and never mutated afterwards.
A [Registry] is safe for concurrent use.
*/
package pattern

import (
	"regexp"
	"strings"
)

// Dialect is a source language in which translation keys are searched for.
type Dialect uint8

const (
	// Template is the markup dialect (HTML templates with interpolation delimiters).
	Template Dialect = 1 << iota
	// Script is the JavaScript dialect.
	Script
)

func (d Dialect) String() string {
	switch d {
	case Template:
		return "template"
	case Script:
		return "script"
	case Template | Script:
		return "template|script"
	default:
		return "unknown"
	}
}

// Strategy selects how a pattern is applied to a document.
type Strategy uint8

const (
	// Direct applies the pattern to the full document and normalizes every match.
	Direct Strategy = iota
	// ScanAll first collects every non-empty whole match, then re-applies the
	// pattern to each whole match in isolation.
	//
	// Some capture groups are only isolated reliably against the narrowed
	// substring, notably the attribute-order-insensitive plural forms.
	ScanAll
)

func (s Strategy) String() string {
	if s == ScanAll {
		return "scan-all"
	}

	return "direct"
}

// Form is the normalization variant used to turn a match into keys.
type Form uint8

const (
	// Plain uses the trimmed first capture as key.
	Plain Form = iota
	// Quoted is like Plain, and additionally unescapes the quote character of the pattern.
	Quoted
	// Directive uses the first capture as key and the second as default value.
	Directive
	// Plural uses the first capture as key and synthesizes an ICU plural default
	// value from the array literal in the second capture.
	Plural
	// KeyArray splits an array literal of quoted keys into one key per element.
	KeyArray
)

func (f Form) String() string {
	switch f {
	case Plain:
		return "plain"
	case Quoted:
		return "quoted"
	case Directive:
		return "directive"
	case Plural:
		return "plural"
	case KeyArray:
		return "key-array"
	default:
		return "unknown"
	}
}

// Pattern is a named, compiled matcher for one syntactic form of translation key.
type Pattern struct {
	Name     string
	Dialects Dialect
	Strategy Strategy
	Form     Form

	// Quote is the quote character (' or ") used by Quoted and KeyArray patterns.
	Quote byte

	// Swap reports that the key is the second capture and the payload the first.
	// It is set on the plural form where the plural attribute comes first.
	Swap bool

	re *regexp.Regexp
}

// AppliesTo reports whether p is part of the pattern set for d.
func (p *Pattern) AppliesTo(d Dialect) bool {
	return p.Dialects&d != 0
}

// Submatches returns every match of p in text together with its capture groups.
func (p *Pattern) Submatches(text string) [][]string {
	return p.re.FindAllStringSubmatch(text, -1)
}

// WholeMatches returns the full text of every match of p in text, skipping empty matches.
func (p *Pattern) WholeMatches(text string) []string {
	all := p.re.FindAllString(text, -1)

	out := all[:0]
	for _, m := range all {
		if m != "" {
			out = append(out, m)
		}
	}

	return out
}

// Expr returns the source text of the compiled regular expression.
func (p *Pattern) Expr() string {
	return p.re.String()
}

func (p *Pattern) String() string {
	return p.Name
}

// Delimiters is the pair of tokens that open and close an interpolation in templates.
type Delimiters struct {
	Start string `yaml:"startDelimiter"`
	End   string `yaml:"endDelimiter"`
}

// DefaultDelimiters are the AngularJS interpolation delimiters.
var DefaultDelimiters = Delimiters{Start: "{{", End: "}}"}

// Strip removes every occurrence of both delimiters from s.
func (d Delimiters) Strip(s string) string {
	return strings.NewReplacer(d.Start, "", d.End, "").Replace(s)
}

func (d Delimiters) String() string {
	return d.Start + " " + d.End
}
