// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"home": map[string]any{
			"title": "Home",
			"menu": map[string]any{
				"open":  "Open",
				"close": nil,
			},
		},
		"footer": "Footer",
	}

	flat, err := Flatten(tree)
	require.NoError(t, err)

	assert.Equal(t, Flat{
		"home.title":      String("Home"),
		"home.menu.open":  String("Open"),
		"home.menu.close": NullValue(),
		"footer":          String("Footer"),
	}, flat)

	back, err := Unflatten(flat)
	require.NoError(t, err)
	assert.Equal(t, tree, back)

	again, err := Flatten(back)
	require.NoError(t, err)
	assert.Equal(t, flat, again)
}

func TestFlattenStringMaps(t *testing.T) {
	t.Parallel()

	flat, err := Flatten(map[string]any{
		"errors": map[string]string{"notFound": "Not found"},
	})
	require.NoError(t, err)
	assert.Equal(t, Flat{"errors.notFound": String("Not found")}, flat)
}

func TestFlattenDropsEmptyNamespaces(t *testing.T) {
	t.Parallel()

	flat, err := Flatten(map[string]any{
		"a": map[string]any{},
		"b": "x",
		"c": map[string]any{"d": map[string]string{}},
	})
	require.NoError(t, err)
	assert.Equal(t, Flat{"b": String("x")}, flat)

	tree, err := Unflatten(flat)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b": "x"}, tree)
}

func TestFlattenRejectsInvalidLeaf(t *testing.T) {
	t.Parallel()

	_, err := Flatten(map[string]any{"count": 3})
	require.ErrorIs(t, err, ErrInvalidLeaf)

	_, err = Flatten(map[string]any{"list": []any{"a"}})
	require.ErrorIs(t, err, ErrInvalidLeaf)
}

func TestFlattenRejectsCycle(t *testing.T) {
	t.Parallel()

	loop := map[string]any{"a": "A"}
	loop["self"] = loop

	_, err := Flatten(loop)
	require.ErrorIs(t, err, ErrCycle)

	// A namespace shared by two parents is not a cycle.
	shared := map[string]any{"x": "X"}

	flat, err := Flatten(map[string]any{"one": shared, "two": shared})
	require.NoError(t, err)
	assert.Equal(t, Flat{"one.x": String("X"), "two.x": String("X")}, flat)
}

func TestUnflattenErrors(t *testing.T) {
	t.Parallel()

	_, err := Unflatten(Flat{"a": String("A"), "a.b": String("B")})
	require.ErrorIs(t, err, ErrKeyConflict)

	_, err = Unflatten(Flat{"a..b": String("B")})
	require.ErrorIs(t, err, ErrEmptySegment)

	_, err = Unflatten(Flat{".a": String("B")})
	require.ErrorIs(t, err, ErrEmptySegment)
}

func TestFlatHelpers(t *testing.T) {
	t.Parallel()

	f := FromStrings(map[string]string{"b": "B", "a": ""})
	f["c"] = NullValue()

	assert.Equal(t, []string{"a", "b", "c"}, f.Keys())
	assert.Equal(t, map[string]any{"a": "", "b": "B", "c": nil}, f.Plain())

	c := f.Clone()
	c["d"] = String("D")
	assert.NotContains(t, f, "d")

	assert.True(t, f["a"].Empty())
	assert.True(t, f["c"].Empty())
	assert.False(t, f["b"].Empty())
}
