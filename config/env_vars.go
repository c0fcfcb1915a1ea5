// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	maxEnvironmentKeyValueParts = 2
	minQuotedValueLength        = 2
	dotEnvFile                  = ".env"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedSliceType    = errors.New("unsupported slice type")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

// readEnv populates spec, a pointer to a struct, from the environment
// variables named by its `env` struct tags. Untagged struct fields are
// walked recursively.
//
// A tag of the form `env:"NAME,overwrite"` replaces the current value;
// without "overwrite" the variable only fills a zero value.
func readEnv(spec any) error {
	structValue := reflect.ValueOf(spec)
	if structValue.Kind() != reflect.Ptr {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structValue = structValue.Elem()
	if structValue.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got a pointer to %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structType := structValue.Type()

	for fieldIndex := range structValue.NumField() {
		field := structValue.Field(fieldIndex)
		fieldType := structType.Field(fieldIndex)

		if !field.CanSet() {
			continue
		}

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			if field.Kind() == reflect.Struct {
				if err := readEnv(field.Addr().Interface()); err != nil {
					return err
				}
			}

			continue
		}

		parts := strings.Split(tag, ",")
		envVarName := parts[0]
		overwrite := slices.Contains(parts[1:], "overwrite")

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}

		if !overwrite && !field.IsZero() {
			continue
		}

		if err := setFieldValue(field, fieldType.Name, envVarName, envValue); err != nil {
			return err
		}
	}

	return nil
}

// setFieldValue parses envValue into field according to its kind.
func setFieldValue(field reflect.Value, fieldName, envVarName, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(strings.TrimSpace(envValue), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int for %s from env var %s (%s): %w",
				fieldName, envVarName, envValue, err)
		}

		field.SetInt(intValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.TrimSpace(envValue))
		if err != nil {
			return fmt.Errorf("failed to parse bool for %s from env var %s (%s): %w",
				fieldName, envVarName, envValue, err)
		}

		field.SetBool(boolValue)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("%w for field %s", errUnsupportedSliceType, fieldName)
		}

		field.Set(reflect.ValueOf(splitList(envValue)))
	default:
		return fmt.Errorf("%w for field %s: %s", errUnsupportedFieldType, fieldName, field.Kind())
	}

	return nil
}

// splitList splits a comma-separated list, dropping blank items.
func splitList(s string) []string {
	out := []string{}

	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// useDotEnv loads environment variables from the .env file of the current
// working directory. A missing file is not an error.
func useDotEnv() error {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn().
			Err(err).
			Msg("Could not get current working directory")

		return nil
	}

	return loadDotEnv(filepath.Join(cwd, dotEnvFile))
}

// loadDotEnv sets the variables of the .env file at envPath that are not
// already present in the environment.
func loadDotEnv(envPath string) error {
	// #nosec G304 - envPath is controlled and comes from known safe sources
	data, err := os.ReadFile(envPath)
	if os.IsNotExist(err) {
		log.Debug().
			Str("path", envPath).
			Msg("No .env file found, skipping")

		return nil
	}

	if err != nil {
		return fmt.Errorf("could not read %s: %w", envPath, err)
	}

	for lineNumber, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", maxEnvironmentKeyValueParts)
		if len(parts) != maxEnvironmentKeyValueParts {
			log.Warn().
				Str("path", envPath).
				Int("line", lineNumber+1).
				Str("content", line).
				Msg("Invalid format in .env file")

			continue
		}

		key, value := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		// Strip matching quotes
		if len(value) >= minQuotedValueLength && value[0] == value[len(value)-1] && (value[0] == '"' || value[0] == '\'') {
			value = value[1 : len(value)-1]
		}

		if _, set := os.LookupEnv(key); set {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			log.Warn().
				Err(err).
				Str("key", key).
				Msg("Could not set environment variable")
		}
	}

	log.Info().
		Str("path", envPath).
		Msg("Loaded configuration from .env file")

	return nil
}
