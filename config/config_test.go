// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/i18ntidy/core/pattern"
	"codeberg.org/pixivfe/i18ntidy/core/tidy"
)

/*
TestLoad cases set environment variables, so they cannot run in parallel.
*/

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "i18ntidy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

const sampleYAML = `sources:
  cwd: ./web
  templates:
    - app/**/*.html
  scripts:
    - app/**/*.js
  interpolation:
    startDelimiter: "[["
    endDelimiter: "]]"
catalog:
  languages: [en, fr, pt_BR]
  defaultLanguage: en
  existing:
    - i18n/*.json
  nullEmpty: true
  safeMode: true
output:
  dir: dist/i18n
  prefix: locale-
  format: JSON
  workers: 3
`

func TestLoad(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	cfg := &Config{}
	require.NoError(t, cfg.Load([]string{"-config", path}))

	assert.Equal(t, "./web", cfg.Sources.Cwd)
	assert.Equal(t, []string{"app/**/*.html"}, cfg.Sources.Templates)
	assert.Equal(t, pattern.Delimiters{Start: "[[", End: "]]"}, cfg.Delimiters())
	assert.Equal(t, []string{"en", "fr", "pt_BR"}, cfg.Catalog.Languages)
	assert.True(t, cfg.Catalog.NullEmpty)
	assert.True(t, cfg.Catalog.SafeMode)
	assert.False(t, cfg.Catalog.KeyAsText)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "sync", cfg.Output.Mode)
	assert.Equal(t, 3, cfg.Output.Workers)

	s := cfg.Settings()
	assert.Equal(t, tidy.ModeSync, s.Mode)
	assert.Equal(t, "dist/i18n", s.OutputDir)
	assert.Equal(t, "locale-", s.Prefix)
	assert.Equal(t, []string{"i18n/*.json"}, s.Existing)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	t.Setenv("I18NTIDY_LANGUAGES", "en, de ,")
	t.Setenv("I18NTIDY_KEY_AS_TEXT", "true")
	t.Setenv("I18NTIDY_MODE", "sync")

	cfg := &Config{}
	require.NoError(t, cfg.Load([]string{"-config", path, "-mode", "unused"}))

	assert.Equal(t, []string{"en", "de"}, cfg.Catalog.Languages)
	assert.True(t, cfg.Catalog.KeyAsText)
	assert.Equal(t, "unused", cfg.Output.Mode)
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	path := writeConfig(t, `output:
  format: po
`)

	t.Setenv(configFileEnvVar, path)

	cfg := &Config{}
	require.NoError(t, cfg.Load(nil))

	assert.Equal(t, "po", cfg.Output.Format)
	assert.Equal(t, []string{"en"}, cfg.Catalog.Languages)
	assert.Positive(t, cfg.Output.Workers)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		args    []string
		wantErr error
	}{
		{
			name:    "InvalidLanguage",
			yaml:    "catalog:\n  languages: [\"not a tag\"]\n  defaultLanguage: \"\"\n",
			wantErr: errInvalidLanguage,
		},
		{
			name:    "DuplicateLanguage",
			yaml:    "catalog:\n  languages: [pt-BR, pt_BR]\n  defaultLanguage: pt-BR\n",
			wantErr: errDuplicateLanguage,
		},
		{
			name:    "DefaultLanguageNotListed",
			yaml:    "catalog:\n  languages: [fr]\n  defaultLanguage: en\n",
			wantErr: errDefaultLanguageNotListed,
		},
		{
			name:    "NoSources",
			yaml:    "sources:\n  templates: []\n  scripts: []\n",
			wantErr: errNoSources,
		},
		{
			name:    "EmptyDelimiter",
			yaml:    "sources:\n  interpolation:\n    endDelimiter: \"\"\n",
			wantErr: errEmptyDelimiter,
		},
		{
			name:    "InvalidFormat",
			yaml:    "output:\n  format: xml\n",
			wantErr: errInvalidFormat,
		},
		{
			name:    "InvalidModeFlag",
			yaml:    "output:\n  dir: out\n",
			args:    []string{"-mode", "prune"},
			wantErr: errInvalidMode,
		},
		{
			name:    "NegativeWorkers",
			yaml:    "output:\n  workers: -1\n",
			wantErr: errNegativeWorkers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)

			cfg := &Config{}
			err := cfg.Load(append([]string{"-config", path}, tt.args...))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadRejectsUnknownYAMLField(t *testing.T) {
	path := writeConfig(t, "catalog:\n  langs: [en]\n")

	cfg := &Config{}
	require.Error(t, cfg.Load([]string{"-config", path}))
}

func TestReadEnv(t *testing.T) {
	var target struct {
		Name    string   `env:"I18NTIDY_TEST_NAME"`
		Count   int      `env:"I18NTIDY_TEST_COUNT,overwrite"`
		Enabled bool     `env:"I18NTIDY_TEST_ENABLED,overwrite"`
		Items   []string `env:"I18NTIDY_TEST_ITEMS,overwrite"`
		Nested  struct {
			Value string `env:"I18NTIDY_TEST_NESTED,overwrite"`
		}
	}

	target.Name = "kept"
	target.Count = 1

	t.Setenv("I18NTIDY_TEST_NAME", "ignored")
	t.Setenv("I18NTIDY_TEST_COUNT", " 7 ")
	t.Setenv("I18NTIDY_TEST_ENABLED", "true")
	t.Setenv("I18NTIDY_TEST_ITEMS", "a,,b")
	t.Setenv("I18NTIDY_TEST_NESTED", "deep")

	require.NoError(t, readEnv(&target))

	assert.Equal(t, "kept", target.Name)
	assert.Equal(t, 7, target.Count)
	assert.True(t, target.Enabled)
	assert.Equal(t, []string{"a", "b"}, target.Items)
	assert.Equal(t, "deep", target.Nested.Value)

	t.Setenv("I18NTIDY_TEST_COUNT", "many")
	require.Error(t, readEnv(&target))

	require.ErrorIs(t, readEnv(target), errExpectedPointerToStruct)
}

func TestLoadDotEnv(t *testing.T) {
	// Registers cleanup of variables the .env file sets.
	t.Setenv("I18NTIDY_TEST_DOTENV", "")
	t.Setenv("I18NTIDY_TEST_PRESET", "preset")
	require.NoError(t, os.Unsetenv("I18NTIDY_TEST_DOTENV"))

	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(`# comment
I18NTIDY_TEST_DOTENV="from file"
I18NTIDY_TEST_PRESET=overridden
not a pair
`), 0o644))

	require.NoError(t, loadDotEnv(envPath))

	assert.Equal(t, "from file", os.Getenv("I18NTIDY_TEST_DOTENV"))
	assert.Equal(t, "preset", os.Getenv("I18NTIDY_TEST_PRESET"))

	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestFormatPhase(t *testing.T) {
	m := map[string]any{
		"sys":     "phase",
		"phase":   "write",
		"items":   4,
		"len":     "512",
		"dur":     12,
		"lang":    "fr",
		"message": "",
	}

	require.NoError(t, formatPhase(m))
	assert.Equal(t, "[write] 4 items, 512 in 12 (fr)", m["message"])
	assert.NotContains(t, m, "sys")

	other := map[string]any{"sys": "tidy", "message": "hello"}
	require.NoError(t, formatPhase(other))
	assert.Equal(t, "hello", other["message"])
}

func TestRevision(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", buildInfo{}.Revision())
	assert.Equal(t, "2025-01-02-0123abcd+dirty", buildInfo{
		VcsRevision: "0123abcdef",
		VcsTime:     "2025-01-02T03:04:05Z",
		VcsModified: true,
	}.Revision())
}
