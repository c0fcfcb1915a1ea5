// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalogfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/pretty"

	"codeberg.org/pixivfe/i18ntidy/core/catalog"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatPO   = "po"
)

// Options configures a Writer.
type Options struct {
	// Namespace writes JSON catalogs as nested trees instead of flat maps.
	Namespace bool
}

// Writer encodes merged catalogs for one output format.
type Writer interface {
	// Encode returns the file contents of c for language lang.
	Encode(lang string, c catalog.Flat) ([]byte, error)

	// Ext returns the default file suffix of the format.
	Ext() string
}

// NewWriter returns the Writer of format.
func NewWriter(format string, opts Options) (Writer, error) {
	switch format {
	case FormatJSON:
		return JSONWriter{Namespace: opts.Namespace}, nil
	case FormatPO:
		return POWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Destination returns the output path of a language catalog.
func Destination(dir, prefix, lang, suffix string) string {
	return filepath.Join(dir, prefix+lang+suffix)
}

// Save encodes c with w and writes it to path, creating parent directories.
func Save(w Writer, path, lang string, c catalog.Flat) error {
	data, err := w.Encode(lang, c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}

	return nil
}

// JSONWriter writes catalogs as indented JSON with sorted keys.
type JSONWriter struct {
	Namespace bool
}

// Ext implements Writer.
func (JSONWriter) Ext() string { return ".json" }

// Encode implements Writer. Null entries are written as JSON null.
func (w JSONWriter) Encode(_ string, c catalog.Flat) ([]byte, error) {
	var doc any = c.Plain()

	if w.Namespace {
		tree, err := catalog.Unflatten(c)
		if err != nil {
			return nil, err
		}

		doc = tree
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	return pretty.PrettyOptions(buf.Bytes(), &pretty.Options{
		Width:    80,
		Indent:   "  ",
		SortKeys: true,
	}), nil
}

// POWriter writes catalogs as gettext PO files, one msgid per key.
type POWriter struct{}

// Ext implements Writer.
func (POWriter) Ext() string { return ".po" }

// Encode implements Writer. Null entries are written as empty msgstr.
func (POWriter) Encode(lang string, c catalog.Flat) ([]byte, error) {
	var b strings.Builder

	writeHeader(&b, lang)

	keys := c.Keys()
	for i, k := range keys {
		fmt.Fprintf(&b, "msgid \"%s\"\n", poEscaper.Replace(k))
		fmt.Fprintf(&b, "msgstr \"%s\"\n", poEscaper.Replace(c[k].Text))

		if i < len(keys)-1 {
			fmt.Fprintln(&b)
		}
	}

	return []byte(b.String()), nil
}

// poEscaper escapes the characters PO strings cannot hold literally. Other
// text, non-ASCII included, is written as is.
var poEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// writeHeader emits a PO header.
func writeHeader(b *strings.Builder, lang string) {
	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintln(b, `"Project-Id-Version: i18ntidy\n"`)
	fmt.Fprintf(b, "\"Language: %s\\n\"\n", lang)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b)
}
