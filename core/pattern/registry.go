// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyDelimiter is returned by NewRegistry when a delimiter is empty.
var ErrEmptyDelimiter = errors.New("interpolation delimiters must not be empty")

// Placeholders substituted with the quoted delimiters in definition expressions.
const (
	startToken = "${start}"
	endToken   = "${end}"
)

type definition struct {
	name     string
	dialects Dialect
	strategy Strategy
	form     Form
	quote    byte
	swap     bool
	expr     string
}

// definitions lists every pattern in registry order. Later patterns win when
// two of them produce the same key.
var definitions = []definition{
	{
		name: "commentSimpleQuote", dialects: Template | Script, form: Quoted, quote: '\'',
		expr: `/\*\s*i18nextract\s*\*/'((?:\\.|[^'\\])*)'`,
	},
	{
		name: "commentDoubleQuote", dialects: Template | Script, form: Quoted, quote: '"',
		expr: `/\*\s*i18nextract\s*\*/"((?:\\.|[^"\\])*)"`,
	},
	{
		name: "HtmlFilterSimpleQuote", dialects: Template, strategy: ScanAll, form: Quoted, quote: '\'',
		expr: startToken + `\s*(?:::)?'((?:\\.|[^'\\])*)'\s*\|\s*translate(:.*?)?\s*` + endToken,
	},
	{
		name: "HtmlFilterDoubleQuote", dialects: Template, strategy: ScanAll, form: Quoted, quote: '"',
		expr: startToken + `\s*(?:::)?"((?:\\.|[^"\\])*)"\s*\|\s*translate(:.*?)?\s*` + endToken,
	},
	{
		name: "HtmlFilterTernary", dialects: Template,
		expr: startToken + `\s*(?:::)?([^?]*\?[^:]*:[^|}]*)\s*\|\s*translate(:.*?)?\s*` + endToken,
	},
	{
		name: "HtmlDirective", dialects: Template, strategy: ScanAll,
		expr: `<(?:[^>"]|"(?:[^"]|/")*")*\stranslate(?:>|\s[^>]*>)([^<]*)`,
	},
	{
		name: "HtmlDirectiveSimpleQuote", dialects: Template, form: Directive,
		expr: `<(?:[^>"]|"(?:[^"]|/")*")*\stranslate='([^']*)'[^>]*>([^<]*)`,
	},
	{
		name: "HtmlDirectiveDoubleQuote", dialects: Template, form: Directive,
		expr: `<(?:[^>"]|"(?:[^"]|/")*")*\stranslate="([^"]*)"[^>]*>([^<]*)`,
	},
	{
		name: "HtmlDirectivePluralLast", dialects: Template, strategy: ScanAll, form: Plural,
		expr: `translate="((?:\\.|[^"\\])*)".*angular-plural-extract="((?:\\.|[^"\\])*)"`,
	},
	{
		name: "HtmlDirectivePluralFirst", dialects: Template, strategy: ScanAll, form: Plural, swap: true,
		expr: `angular-plural-extract="((?:\\.|[^"\\])*)".*translate="((?:\\.|[^"\\])*)"`,
	},
	{
		name: "HtmlNgBindHtml", dialects: Template, form: Quoted, quote: '\'',
		expr: `ng-bind-html="\s*'((?:\\.|[^'\\])*)'\s*\|\s*translate(:.*?)?\s*"`,
	},
	{
		name: "HtmlNgBindHtmlTernary", dialects: Template,
		expr: `ng-bind-html="\s*([^?]*?[^:]*:[^|}]*)\s*\|\s*translate(:.*?)?\s*"`,
	},
	{
		name: "JavascriptServiceSimpleQuote", dialects: Script, form: Quoted, quote: '\'',
		expr: `\$translate\(\s*'((?:\\.|[^'\\])*)'[^)]*\)`,
	},
	{
		name: "JavascriptServiceDoubleQuote", dialects: Script, form: Quoted, quote: '"',
		expr: `\$translate\(\s*"((?:\\.|[^"\\])*)"[^)]*\)`,
	},
	{
		name: "JavascriptServiceArraySimpleQuote", dialects: Script, form: KeyArray, quote: '\'',
		expr: `\$translate\((?:\s*(\[\s*(?:(?:'(?:(?:\.|[^.*'\\])*)')\s*,*\s*)+\s*\])\s*)\)`,
	},
	{
		name: "JavascriptServiceArrayDoubleQuote", dialects: Script, form: KeyArray, quote: '"',
		expr: `\$translate\((?:\s*(\[\s*(?:(?:"(?:(?:\.|[^.*"\\])*)")\s*,*\s*)+\s*\])\s*)\)`,
	},
	{
		name: "JavascriptServiceInstantSimpleQuote", dialects: Script, form: Quoted, quote: '\'',
		expr: `\$translate\.instant\(\s*'((?:\\.|[^'\\])*)'[^)]*\)`,
	},
	{
		name: "JavascriptServiceInstantDoubleQuote", dialects: Script, form: Quoted, quote: '"',
		expr: `\$translate\.instant\(\s*"((?:\\.|[^"\\])*)"[^)]*\)`,
	},
	{
		name: "JavascriptFilterSimpleQuote", dialects: Script, strategy: ScanAll, form: Quoted, quote: '\'',
		expr: `\$filter\(\s*'translate'\s*\)\s*\(\s*'((?:\\.|[^'\\])*)'[^)]*\)`,
	},
	{
		name: "JavascriptFilterDoubleQuote", dialects: Script, strategy: ScanAll, form: Quoted, quote: '"',
		expr: `\$filter\(\s*"translate"\s*\)\s*\(\s*"((?:\\.|[^"\\])*)"[^)]*\)`,
	},
}

// Registry is the ordered set of compiled patterns for one delimiter configuration.
type Registry struct {
	delims   Delimiters
	patterns []*Pattern
	byName   map[string]*Pattern
}

// NewRegistry compiles every pattern for the interpolation delimiters d.
//
// The delimiters are quoted before being embedded, so they may contain
// regular expression metacharacters. All patterns are case-insensitive.
func NewRegistry(d Delimiters) (*Registry, error) {
	if d.Start == "" || d.End == "" {
		return nil, ErrEmptyDelimiter
	}

	r := strings.NewReplacer(
		startToken, regexp.QuoteMeta(d.Start),
		endToken, regexp.QuoteMeta(d.End),
	)

	reg := &Registry{
		delims:   d,
		patterns: make([]*Pattern, 0, len(definitions)),
		byName:   make(map[string]*Pattern, len(definitions)),
	}

	for _, def := range definitions {
		re, err := regexp.Compile("(?i)" + r.Replace(def.expr))
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", def.name, err)
		}

		p := &Pattern{
			Name:     def.name,
			Dialects: def.dialects,
			Strategy: def.strategy,
			Form:     def.form,
			Quote:    def.quote,
			Swap:     def.swap,
			re:       re,
		}

		reg.patterns = append(reg.patterns, p)
		reg.byName[p.Name] = p
	}

	return reg, nil
}

// Delimiters returns the interpolation delimiters the registry was compiled for.
func (r *Registry) Delimiters() Delimiters {
	return r.delims
}

// All returns every pattern in registry order.
func (r *Registry) All() []*Pattern {
	out := make([]*Pattern, len(r.patterns))
	copy(out, r.patterns)

	return out
}

// For returns the patterns applicable to d, in registry order.
func (r *Registry) For(d Dialect) []*Pattern {
	out := make([]*Pattern, 0, len(r.patterns))

	for _, p := range r.patterns {
		if p.AppliesTo(d) {
			out = append(out, p)
		}
	}

	return out
}

// Lookup returns the pattern with the given name.
func (r *Registry) Lookup(name string) (*Pattern, bool) {
	p, ok := r.byName[name]

	return p, ok
}
