// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"regexp"
	"strings"

	"codeberg.org/pixivfe/i18ntidy/core/pattern"
)

// Entry is a canonical translation key with its default value.
type Entry struct {
	Key     string
	Default string
}

// ternaryExpr recognises `cond ? 'a' : 'b'` with single or double quoted branches.
var ternaryExpr = regexp.MustCompile(
	`^[^?]*\?\s*(?:'((?:\\.|[^'\\])*)'|"((?:\\.|[^"\\])*)")\s*:\s*(?:'((?:\\.|[^'\\])*)'|"((?:\\.|[^"\\])*)")\s*$`,
)

// normalizer turns the capture groups of one match into canonical entries.
type normalizer struct {
	delims    pattern.Delimiters
	keyAsText bool
}

// normalize returns the entries for one match of p. groups[0] is the whole
// match and the remaining elements are the capture groups.
func (n normalizer) normalize(p *pattern.Pattern, groups []string) []Entry {
	if len(groups) < 2 {
		return nil
	}

	var key, def string

	switch p.Form {
	case pattern.Directive:
		key = strings.TrimSpace(groups[1])
		if len(groups) > 2 {
			def = strings.TrimSpace(groups[2])
		}
	case pattern.Plural:
		if len(groups) < 3 {
			return nil
		}

		k, forms := groups[1], groups[2]
		if p.Swap {
			k, forms = forms, k
		}

		key = strings.TrimSpace(k)
		def = pluralDefault(forms)
	default:
		key = strings.TrimSpace(groups[1])
	}

	if key == "" {
		return nil
	}

	switch p.Form {
	case pattern.Quoted:
		key = unescapeQuote(key, p.Quote)
	case pattern.KeyArray:
		return splitKeyArray(key, p.Quote)
	}

	if a, b, ok := n.ternary(key); ok {
		out := make([]Entry, 0, 2)

		for _, branch := range []string{a, b} {
			if branch != "" {
				out = append(out, n.entry(branch, ""))
			}
		}

		return out
	}

	return []Entry{n.entry(key, def)}
}

// entry applies the keyAsText policy.
func (n normalizer) entry(key, def string) Entry {
	if def == "" && n.keyAsText {
		def = key
	}

	return Entry{Key: key, Default: def}
}

// ternary splits a key of the form `cond ? 'a' : 'b'` into its two branches,
// after removing interpolation delimiters.
func (n normalizer) ternary(key string) (string, string, bool) {
	m := ternaryExpr.FindStringSubmatch(n.delims.Strip(key))
	if m == nil {
		return "", "", false
	}

	branch := func(single, double string) string {
		if single != "" {
			return strings.TrimSpace(unescapeQuote(single, '\''))
		}

		return strings.TrimSpace(unescapeQuote(double, '"'))
	}

	return branch(m[1], m[2]), branch(m[3], m[4]), true
}

// splitKeyArray expands an array literal of quoted keys. Array calls never
// carry a default value.
func splitKeyArray(raw string, quote byte) []Entry {
	s := strings.ReplaceAll(raw, string(quote), "")
	s = strings.NewReplacer("[", "", "]", "").Replace(s)

	var out []Entry

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(unescapeQuote(unescapeQuote(item, '"'), '\''))
		if item != "" {
			out = append(out, Entry{Key: item})
		}
	}

	return out
}

func unescapeQuote(s string, quote byte) string {
	q := string(quote)

	return strings.ReplaceAll(s, `\`+q, q)
}
