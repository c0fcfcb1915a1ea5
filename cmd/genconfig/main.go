// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/i18ntidy/config"
	"codeberg.org/pixivfe/i18ntidy/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/i18ntidy.yaml.example"
	filePerm       = 0o644
	dirPerm        = 0o755

	envFileHeader = `# i18ntidy configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# i18ntidy configuration (via configuration file)
#
# Copy this file to i18ntidy.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
)

// essentialEnvVars are written uncommented.
var essentialEnvVars = map[string]bool{
	"I18NTIDY_LANGUAGES":        true,
	"I18NTIDY_DEFAULT_LANGUAGE": true,
}

// essentialYAMLKeys are written uncommented, together with their section.
var essentialYAMLKeys = []string{"languages:", "defaultLanguage:", "- "}

func main() {
	audit.SetDefaultLogger()

	if err := os.MkdirAll(filepath.Dir(envOutputFile), dirPerm); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	generateEnvFile()
	generateYAMLFile()
}

// generateEnvFile generates the deploy/.env.example file.
func generateEnvFile() {
	cfg := &config.Config{}
	cfg.SetDefaults()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)
		writeEnvFields(&sb, structValue)
		sb.WriteString("\n")
	}

	if err := os.WriteFile(envOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", envOutputFile).Msg("Failed to write .env.example file")
	}

	log.Info().Str("path", envOutputFile).Msg("Successfully generated .env.example")
}

// writeEnvFields writes one line per tagged field of structValue, descending
// into untagged nested structs.
func writeEnvFields(sb *strings.Builder, structValue reflect.Value) {
	typ := structValue.Type()

	for i := range typ.NumField() {
		field := typ.Field(i)
		value := structValue.Field(i)

		tag, ok := field.Tag.Lookup("env")
		if !ok {
			if value.Kind() == reflect.Struct {
				writeEnvFields(sb, value)
			}

			continue
		}

		envVarName := strings.Split(tag, ",")[0]
		formatted := formatEnvValue(value)

		switch {
		case essentialEnvVars[envVarName]:
			fmt.Fprintf(sb, "%s=\"%s\"\n", envVarName, formatted)
		case formatted == "":
			fmt.Fprintf(sb, "# %s=\n", envVarName)
		default:
			fmt.Fprintf(sb, "# %s=%s\n", envVarName, formatted)
		}
	}
}

// formatEnvValue renders value the way the environment reader parses it back.
func formatEnvValue(value reflect.Value) string {
	if value.Kind() == reflect.Slice {
		items := make([]string, value.Len())
		for i := range value.Len() {
			items[i] = fmt.Sprint(value.Index(i).Interface())
		}

		return strings.Join(items, ",")
	}

	return fmt.Sprint(value.Interface())
}

// generateYAMLFile generates the deploy/i18ntidy.yaml.example file.
func generateYAMLFile() {
	cfg := &config.Config{}
	cfg.SetDefaults()

	yamlContent, err := cfg.YAML()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	for _, section := range splitSections(string(yamlContent)) {
		sb.WriteString("\n")
		writeSection(&sb, section)
	}

	if err := os.WriteFile(yamlOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", yamlOutputFile).Msg("Failed to write config file")
	}

	log.Info().Str("path", yamlOutputFile).Msg("Successfully generated i18ntidy.yaml.example")
}

// splitSections groups marshaled YAML lines by top-level key.
func splitSections(content string) [][]string {
	var sections [][]string

	for line := range strings.SplitSeq(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasPrefix(line, " ") || len(sections) == 0 {
			sections = append(sections, []string{line})
			continue
		}

		last := len(sections) - 1
		sections[last] = append(sections[last], line)
	}

	return sections
}

// writeSection writes a top-level section with every line commented out,
// except the essential keys. The section header stays uncommented only when
// one of its keys does, so the template never decodes a section to null.
func writeSection(sb *strings.Builder, section []string) {
	header, body := section[0], section[1:]

	keep := make([]bool, len(body))
	active := false

	for i, line := range body {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range essentialYAMLKeys {
			if strings.HasPrefix(trimmed, prefix) {
				// Sequence items only follow an essential key.
				if prefix == "- " && (i == 0 || !keep[i-1]) {
					continue
				}

				keep[i] = true
				active = true
			}
		}
	}

	if active {
		sb.WriteString(header + "\n")
	} else {
		sb.WriteString("# " + header + "\n")
	}

	for i, line := range body {
		if keep[i] {
			sb.WriteString(line + "\n")
			continue
		}

		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(sb, "%s# %s\n", strings.Repeat(" ", indentSize), strings.TrimSpace(line))
	}
}
