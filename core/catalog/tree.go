// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrCycle is returned by Flatten when a namespace contains itself.
	ErrCycle = errors.New("namespace tree contains a cycle")
	// ErrInvalidLeaf is returned by Flatten for leaves that are neither strings nor null.
	ErrInvalidLeaf = errors.New("catalog values must be strings or null")
	// ErrKeyConflict is returned by Unflatten when a key is both a value and a namespace.
	ErrKeyConflict = errors.New("key is both a value and a namespace")
	// ErrEmptySegment is returned by Unflatten for keys with an empty namespace segment.
	ErrEmptySegment = errors.New("key has an empty namespace segment")
)

// Flatten converts a namespace tree into a flat catalog with dotted keys.
//
// Nodes are map[string]any or map[string]string; leaves are strings or nil
// (null). Depth is not limited. A tree that contains itself is rejected.
// An empty namespace holds no key and is dropped, so Unflatten restores a tree
// only when none of its namespaces is empty.
func Flatten(tree map[string]any) (Flat, error) {
	out := make(Flat)
	if err := flattenInto(out, "", tree, map[uintptr]struct{}{}); err != nil {
		return nil, err
	}

	return out, nil
}

func flattenInto(out Flat, prefix string, node map[string]any, path map[uintptr]struct{}) error {
	id := reflect.ValueOf(node).Pointer()
	if _, ok := path[id]; ok {
		return fmt.Errorf("%w at %q", ErrCycle, prefix)
	}

	path[id] = struct{}{}
	defer delete(path, id)

	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + Separator + k
		}

		switch val := v.(type) {
		case nil:
			out[key] = NullValue()
		case string:
			out[key] = String(val)
		case Value:
			out[key] = val
		case map[string]any:
			if err := flattenInto(out, key, val, path); err != nil {
				return err
			}
		case map[string]string:
			for kk, vv := range val {
				out[key+Separator+kk] = String(vv)
			}
		default:
			return fmt.Errorf("%w: %q is %T", ErrInvalidLeaf, key, v)
		}
	}

	return nil
}

// Unflatten converts a flat catalog back into a namespace tree, splitting keys
// on [Separator]. Null values become nil leaves.
func Unflatten(flat Flat) (map[string]any, error) {
	root := make(map[string]any)

	// Sorted keys make conflict errors deterministic.
	for _, key := range flat.Keys() {
		segments := strings.Split(key, Separator)

		node := root

		for i, seg := range segments {
			if seg == "" {
				return nil, fmt.Errorf("%w: %q", ErrEmptySegment, key)
			}

			if i == len(segments)-1 {
				if _, exists := node[seg]; exists {
					return nil, fmt.Errorf("%w: %q", ErrKeyConflict, key)
				}

				node[seg] = flat[key].Any()

				break
			}

			next, exists := node[seg]
			if !exists {
				child := make(map[string]any)
				node[seg] = child
				node = child

				continue
			}

			child, ok := next.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrKeyConflict, key)
			}

			node = child
		}
	}

	return root, nil
}
