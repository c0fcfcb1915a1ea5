// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/i18ntidy/core/pattern"
	"codeberg.org/pixivfe/i18ntidy/core/source"
)

func newExtractor(t *testing.T, keyAsText bool) *Extractor {
	t.Helper()

	e, err := New(Options{KeyAsText: keyAsText})
	require.NoError(t, err)

	return e
}

func tpl(content string) source.Document {
	return source.Document{Path: "view.html", Dialect: pattern.Template, Content: content}
}

func js(content string) source.Document {
	return source.Document{Path: "app.js", Dialect: pattern.Script, Content: content}
}

func TestScanFilterReference(t *testing.T) {
	t.Parallel()

	docs := []source.Document{tpl(`<h1>{{ 'home.title' | translate }}</h1>`)}

	assert.Equal(t, Result{"home.title": ""}, newExtractor(t, false).Scan(docs))
	assert.Equal(t, Result{"home.title": "home.title"}, newExtractor(t, true).Scan(docs))
}

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		docs      []source.Document
		keyAsText bool
		want      Result
	}{
		{
			name: "TernaryFilter",
			docs: []source.Document{tpl(`{{ cond ? 'yes' : 'no' | translate }}`)},
			want: Result{"yes": "", "no": ""},
		},
		{
			name:      "TernaryFilterKeyAsText",
			docs:      []source.Document{tpl(`{{ cond ? 'yes' : 'no' | translate }}`)},
			keyAsText: true,
			want:      Result{"yes": "yes", "no": "no"},
		},
		{
			name: "ArrayCall",
			docs: []source.Document{js(`$translate(['a.b','c.d']).then(fn);`)},
			want: Result{"a.b": "", "c.d": ""},
		},
		{
			name:      "ArrayCallNeverCarriesDefault",
			docs:      []source.Document{js(`$translate(["a.b", "c.d"])`)},
			keyAsText: true,
			want:      Result{"a.b": "", "c.d": ""},
		},
		{
			name: "DirectiveWithFallbackText",
			docs: []source.Document{tpl(`<h1 translate="title.key">Hello world</h1>`)},
			want: Result{"title.key": "Hello world"},
		},
		{
			name: "DirectiveKeyAsContent",
			docs: []source.Document{tpl(`<p translate>plain.key</p>`)},
			want: Result{"plain.key": ""},
		},
		{
			name: "EscapedQuote",
			docs: []source.Document{js(`$translate('it\'s.key');`)},
			want: Result{"it's.key": ""},
		},
		{
			name: "EmptyKeyDoesNotStopScan",
			docs: []source.Document{tpl(`{{ '' | translate }} {{ 'after' | translate }}`)},
			want: Result{"after": ""},
		},
		{
			name: "LastDocumentWins",
			docs: []source.Document{
				tpl(`<h1 translate="k">First</h1>`),
				tpl(`<h1 translate="k">Second</h1>`),
			},
			want: Result{"k": "Second"},
		},
		{
			name: "LaterPatternWins",
			docs: []source.Document{tpl(`{{ 'k' | translate }} <h1 translate="k">Text</h1>`)},
			want: Result{"k": "Text"},
		},
		{
			name: "ScriptIgnoresTemplatePatterns",
			docs: []source.Document{js(`var s = "{{ 'tpl.key' | translate }}";`)},
			want: Result{},
		},
		{
			name: "CommentMarker",
			docs: []source.Document{tpl(`<script>var x = /* i18nextract */'comment.key';</script>`)},
			want: Result{"comment.key": ""},
		},
		{
			name: "FilterInvocation",
			docs: []source.Document{js(`$filter('translate')('f.key', {x: 1}); $filter("translate")("g.key")`)},
			want: Result{"f.key": "", "g.key": ""},
		},
		{
			name: "InstantCall",
			docs: []source.Document{js(`$translate.instant('now.key')`)},
			want: Result{"now.key": ""},
		},
		{
			name: "BindHTML",
			docs: []source.Document{tpl(`<div ng-bind-html="'html.key' | translate"></div>`)},
			want: Result{"html.key": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := newExtractor(t, tt.keyAsText).Scan(tt.docs)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanPluralIsOrderInsensitive(t *testing.T) {
	t.Parallel()

	e := newExtractor(t, false)

	last := e.Scan([]source.Document{tpl(`<span translate="k" angular-plural-extract="['one item', '{{n}} items']"></span>`)})
	first := e.Scan([]source.Document{tpl(`<span angular-plural-extract="['one item', '{{n}} items']" translate="k"></span>`)})

	want := Result{"k": "{NB, plural, one{one item} other{{{n}} items}}"}
	assert.Equal(t, want, last)
	assert.Equal(t, want, first)

	// An array that is not a literal list of strings still records the key.
	last = e.Scan([]source.Document{tpl(`<span translate="k" angular-plural-extract="[a,b]"></span>`)})
	first = e.Scan([]source.Document{tpl(`<span angular-plural-extract="[a,b]" translate="k"></span>`)})

	assert.Equal(t, Result{"k": ""}, last)
	assert.Equal(t, last, first)
}

func TestScanIsIdempotent(t *testing.T) {
	t.Parallel()

	docs := []source.Document{
		tpl(`{{ 'a' | translate }} {{ "b" | translate }} <p translate>c</p>
<span translate="d" angular-plural-extract="['x', 'y']"></span>`),
		js(`$translate('e'); $translate(['f', 'g']); $filter('translate')('h');`),
	}

	e := newExtractor(t, false)

	first := e.Scan(docs)
	second := e.Scan(docs)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, first.Keys())
}

func TestScanConcurrent(t *testing.T) {
	t.Parallel()

	docs := []source.Document{
		tpl(`<h1 translate="k">First</h1> {{ 'x' | translate }}`),
		js(`$translate('y')`),
		tpl(`<h1 translate="k">Second</h1>`),
	}

	e := newExtractor(t, false)

	got, err := e.ScanConcurrent(context.Background(), docs, 4)
	require.NoError(t, err)
	assert.Equal(t, e.Scan(docs), got)
	assert.Equal(t, "Second", got["k"])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = e.ScanConcurrent(ctx, docs, 4)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsEmptyDelimiter(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Delimiters: pattern.Delimiters{Start: "[["}})
	require.ErrorIs(t, err, pattern.ErrEmptyDelimiter)
}

func TestCustomDelimiters(t *testing.T) {
	t.Parallel()

	e, err := New(Options{Delimiters: pattern.Delimiters{Start: "[[", End: "]]"}})
	require.NoError(t, err)

	got := e.Scan([]source.Document{tpl(`[[ 'custom.key' | translate ]] [[ on ? 'a' : 'b' | translate ]]`)})
	assert.Equal(t, Result{"custom.key": "", "a": "", "b": ""}, got)
}
