// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

// MergeOptions controls how Merge builds the next catalog generation.
type MergeOptions struct {
	// NullEmpty stores entries without a value as null instead of "".
	NullEmpty bool

	// SafeMode keeps entries whose key is no longer referenced by the sources.
	SafeMode bool

	// DefaultLanguage marks the catalog of the default language, which
	// receives the default text captured from the sources.
	DefaultLanguage bool

	// RefreshDefaults replaces default-language text that differs from a
	// non-empty default captured from the sources.
	RefreshDefaults bool
}

// Counts reports what Merge did to a catalog.
type Counts struct {
	New     int
	Updated int
	Deleted int
}

// Merge returns the next generation of existing given the keys found in the
// sources. Stored translations are never overwritten except by the
// RefreshDefaults policy. A nil existing catalog is treated as empty.
func Merge(existing Flat, scanned map[string]string, opts MergeOptions) (Flat, Counts) {
	var counts Counts

	out := make(Flat, len(scanned))

	for key, def := range scanned {
		prev, ok := existing[key]
		if !ok {
			counts.New++

			v := String("")
			if opts.DefaultLanguage {
				v = String(def)
			}

			out[key] = opts.resolve(v)

			continue
		}

		v, updated := opts.update(prev, def)
		if updated {
			counts.Updated++
		}

		out[key] = v
	}

	for key, prev := range existing {
		if _, ok := scanned[key]; ok {
			continue
		}

		counts.Deleted++

		if opts.SafeMode {
			out[key] = opts.resolve(prev)
		}
	}

	return out, counts
}

// update decides the merged value of a key that is both stored and scanned.
func (opts MergeOptions) update(prev Value, def string) (Value, bool) {
	if opts.DefaultLanguage && def != "" {
		if prev.Empty() {
			return String(def), true
		}

		if opts.RefreshDefaults && prev.Text != def {
			return String(def), true
		}
	}

	v := opts.resolve(prev)

	return v, v != prev
}

// resolve applies the null representation selected by NullEmpty.
func (opts MergeOptions) resolve(v Value) Value {
	if opts.NullEmpty && v.Empty() {
		return NullValue()
	}

	if !opts.NullEmpty && v.Null {
		return String("")
	}

	return v
}
