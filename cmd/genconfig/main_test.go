// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteSection(t *testing.T) {
	t.Parallel()

	sections := splitSections(`sources:
  cwd: .
  templates:
    - src/**/*.html
catalog:
  languages:
    - en
    - fr
  defaultLanguage: en
  nullEmpty: false
`)

	var sb strings.Builder
	for _, section := range sections {
		writeSection(&sb, section)
	}

	assert.Equal(t, `# sources:
  # cwd: .
  # templates:
    # - src/**/*.html
catalog:
  languages:
    - en
    - fr
  defaultLanguage: en
  # nullEmpty: false
`, sb.String())
}

func TestWriteEnvFields(t *testing.T) {
	t.Parallel()

	var target struct {
		Languages []string `env:"I18NTIDY_LANGUAGES"`
		Cwd       string   `env:"I18NTIDY_CWD,overwrite"`
		Prefix    string   `env:"I18NTIDY_PREFIX,overwrite"`
		Nested    struct {
			Workers int `env:"I18NTIDY_WORKERS,overwrite"`
		}
	}

	target.Languages = []string{"en", "fr"}
	target.Cwd = "."

	var sb strings.Builder
	writeEnvFields(&sb, reflect.ValueOf(target))

	assert.Equal(t, `I18NTIDY_LANGUAGES="en,fr"
# I18NTIDY_CWD=.
# I18NTIDY_PREFIX=
# I18NTIDY_WORKERS=0
`, sb.String())
}
