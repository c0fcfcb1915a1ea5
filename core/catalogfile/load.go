// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalogfile reads and writes catalog files.

JSON and YAML catalogs may be nested namespace trees or flat maps of dotted
keys. PO catalogs use the key as msgid. A catalog file that does not exist
yet is read as an empty catalog.
*/
package catalogfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/pixivfe/i18ntidy/core/catalog"
)

var (
	// ErrUnsupportedFormat is returned for files whose extension has no codec.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	// ErrInvalidCatalog is returned when a file is not a key/value document.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Load reads the catalog at path. The format is chosen by file extension:
// .json, .yaml, .yml, .po or .pot.
func Load(path string) (catalog.Flat, error) {
	return LoadAs(path, "")
}

// LoadAs is like Load, but a file whose extension is not a catalog extension
// is decoded as format ([FormatJSON] or [FormatPO]) when format is not empty.
func LoadAs(path, format string) (catalog.Flat, error) {
	logger := log.With().Str("sys", "catalogfile").Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Msg("Catalog does not exist, starting empty")

		return catalog.Flat{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	decode, err := decoderFor(path, format)
	if err != nil {
		return nil, err
	}

	flat, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}

	logger.Debug().Int("keys", len(flat)).Msg("Loaded catalog")

	return flat, nil
}

// LoadAll reads every catalog of paths with LoadAs and merges them. A key
// present in several files takes the value of the last one.
func LoadAll(paths []string, format string) (catalog.Flat, error) {
	out := make(catalog.Flat)

	for _, p := range paths {
		flat, err := LoadAs(p, format)
		if err != nil {
			return nil, err
		}

		for k, v := range flat {
			out[k] = v
		}
	}

	return out, nil
}

func decoderFor(path, format string) (func([]byte) (catalog.Flat, error), error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		return decodeJSON, nil
	case ".yaml", ".yml":
		return decodeYAML, nil
	case ".po", ".pot":
		return decodePO, nil
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		return decodeJSON, nil
	case FormatPO:
		return decodePO, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func decodeJSON(data []byte) (catalog.Flat, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalog.Flat{}, nil
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidCatalog)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidCatalog)
	}

	out := make(catalog.Flat)
	if err := walkJSON(out, "", root); err != nil {
		return nil, err
	}

	return out, nil
}

// walkJSON flattens the object node into out.
func walkJSON(out catalog.Flat, prefix string, node gjson.Result) error {
	var err error

	node.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if prefix != "" {
			key = prefix + catalog.Separator + key
		}

		switch {
		case v.Type == gjson.String:
			out[key] = catalog.String(v.String())
		case v.Type == gjson.Null:
			out[key] = catalog.NullValue()
		case v.IsObject():
			err = walkJSON(out, key, v)
		default:
			err = fmt.Errorf("%w: %q is %s", catalog.ErrInvalidLeaf, key, v.Type)
		}

		return err == nil
	})

	return err
}

func decodeYAML(data []byte) (catalog.Flat, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	return catalog.Flatten(tree)
}

func decodePO(data []byte) (catalog.Flat, error) {
	po := gotext.NewPo()
	po.Parse(data)

	out := make(catalog.Flat)

	for id, tr := range po.GetDomain().GetTranslations() {
		// The header is stored under the empty msgid.
		if id == "" {
			continue
		}

		out[id] = catalog.String(tr.Trs[0])
	}

	return out, nil
}
