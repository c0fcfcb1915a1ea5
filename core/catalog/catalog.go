// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog models the persisted translations of one language.

A catalog is handled as a [Flat] mapping of dotted keys ("home.title") to
values. Nested catalogs, where every key segment is a level of the tree, are
converted with [Flatten] and [Unflatten]. [Merge] computes the next generation
of a catalog from its previous contents and the keys found in the sources.
*/
package catalog

import "sort"

// Separator separates the namespace segments of a key.
const Separator = "."

// Value is a catalog leaf: a translated string, or an explicit null that marks
// an entry without a value yet.
type Value struct {
	Text string
	Null bool
}

// String returns v.
func String(s string) Value {
	return Value{Text: s}
}

// NullValue returns the null marker.
func NullValue() Value {
	return Value{Null: true}
}

// Empty reports whether v has no usable text: it is null or the empty string.
func (v Value) Empty() bool {
	return v.Null || v.Text == ""
}

// Any returns v as a plain value for serialization: nil for null, the text otherwise.
func (v Value) Any() any {
	if v.Null {
		return nil
	}

	return v.Text
}

// Flat is a catalog keyed by dotted key.
type Flat map[string]Value

// FromStrings builds a Flat from a map of plain strings.
func FromStrings(m map[string]string) Flat {
	f := make(Flat, len(m))
	for k, v := range m {
		f[k] = String(v)
	}

	return f
}

// Keys returns the keys of f in sorted order.
func (f Flat) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Plain returns f with null values as nil and other values as strings.
func (f Flat) Plain() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v.Any()
	}

	return out
}

// Clone returns a copy of f.
func (f Flat) Clone() Flat {
	out := make(Flat, len(f))
	for k, v := range f {
		out[k] = v
	}

	return out
}
