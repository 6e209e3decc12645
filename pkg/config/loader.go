package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for suite loading.
var (
	ErrFileNotFound     = errors.New("suite file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("suite file is empty")
	ErrInvalidSuite     = errors.New("invalid suite")
)

// Format is a suite file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// SuiteEnvVar names the environment variable DiscoverSuite checks first.
const SuiteEnvVar = "LOGCHECK_SUITE"

// SuiteDiscoveryOrder lists the file names DiscoverSuite looks for.
var SuiteDiscoveryOrder = []string{
	"logcheck.yaml",
	"logcheck.yml",
	"logcheck.json",
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// FormatFromPath detects the format from the file extension (.yaml, .yml for
// YAML, otherwise JSON).
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return FormatYAML
	}
	return FormatJSON
}

// LoadFile reads, expands, schema-checks and validates a suite file.
func LoadFile(path string) (*Suite, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	suite, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return suite, nil
}

// Parse expands environment variables in data, converts it to JSON, checks
// it against the suite schema and validates the result.
func Parse(data []byte, format Format) (*Suite, error) {
	expanded := []byte(ExpandEnvVars(string(data)))

	var jsonData []byte
	switch format {
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(expanded, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		if doc == nil {
			return nil, ErrEmptyFile
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		jsonData = converted
	default:
		if !json.Valid(expanded) {
			return nil, ErrInvalidJSON
		}
		jsonData = expanded
	}

	if result := ValidateSchema(jsonData); !result.IsValid() {
		return nil, fmt.Errorf("%w:\n%s", ErrInvalidSuite, result.Error())
	}

	var suite Suite
	if err := json.Unmarshal(jsonData, &suite); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuite, err)
	}
	if result := Validate(&suite); !result.IsValid() {
		return nil, fmt.Errorf("%w:\n%s", ErrInvalidSuite, result.Error())
	}
	return &suite, nil
}

// ExpandEnvVars expands environment variables in the input string.
// Supports ${VAR_NAME} and ${VAR_NAME:-default} syntax.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		if val := os.Getenv(submatch[1]); val != "" {
			return val
		}
		if len(submatch) >= 3 {
			return submatch[2]
		}
		return ""
	})
}

// DiscoverSuite finds a suite file: LOGCHECK_SUITE if set, otherwise the
// first of SuiteDiscoveryOrder present in dir.
func DiscoverSuite(dir string) (string, error) {
	if envPath := os.Getenv(SuiteEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%s points to non-existent file: %s", SuiteEnvVar, envPath)
	}

	for _, name := range SuiteDiscoveryOrder {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: none of %s in %s", ErrFileNotFound, strings.Join(SuiteDiscoveryOrder, ", "), dir)
}
