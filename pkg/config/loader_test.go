package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/logcapture/internal/matching"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "suite.yaml", `
version: "1"
strategy: contains-in-order
filter:
  loggerGlob: "orders.*"
  level: info
expect:
  - level: INFO
    message: order placed
    properties:
      - key: orderId
        value: "42"
      - lacksKey: secret
  - level: error
    messages:
      - startsWith: payment
      - matches: "payment .* declined"
    error: any
`)

	suite, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", suite.Version)
	require.Len(t, suite.Expect, 2)

	strategy, err := suite.MatchStrategy()
	require.NoError(t, err)
	assert.Equal(t, matching.StrategyContainsInOrder, strategy)
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "suite.json", `{
		"version": "1",
		"strategy": "containsOnly",
		"expect": [
			{"level": "WARN", "messages": [{"jsonPath": {"path": "$.status", "value": 503}}]}
		]
	}`)

	suite, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, suite.Expect, 1)
	require.NotNil(t, suite.Expect[0].Messages[0].JSONPath)
	assert.Equal(t, "$.status", suite.Expect[0].Messages[0].JSONPath.Path)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"invalid json", "s.json", `{ invalid json }`, ErrInvalidJSON},
		{"invalid yaml", "s.yaml", "version: [\n", ErrInvalidYAML},
		{"empty", "s.yaml", "   \n", ErrEmptyFile},
		{"unknown field", "s.yaml", "version: \"1\"\nexpected: []\n", ErrInvalidSuite},
		{"bad version", "s.yaml", "version: \"2\"\n", ErrInvalidSuite},
		{"bad error value", "s.yaml", "version: \"1\"\nexpect:\n  - error: some\n", ErrInvalidSuite},
		{"two matchers", "s.yaml", "version: \"1\"\nexpect:\n  - messages:\n      - startsWith: a\n        endsWith: b\n", ErrInvalidSuite},
		{"bad regex", "s.yaml", "version: \"1\"\nexpect:\n  - messages:\n      - matches: \"(\"\n", ErrInvalidSuite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suite, err := LoadFile(writeFile(t, tt.file, tt.content))
			assert.Nil(t, suite)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = LoadFile(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFile_SchemaErrorPaths(t *testing.T) {
	path := writeFile(t, "s.yaml", `
version: "1"
expect:
  - level: INFO
    properties:
      - key: k
`)
	_, err := LoadFile(path)
	require.ErrorIs(t, err, ErrInvalidSuite)
	assert.Contains(t, err.Error(), "expect[0].properties[0]")
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("LOGCHECK_TEST_USER", "ann")

	suite, err := Parse([]byte(`
version: "1"
expect:
  - message: "hello ${LOGCHECK_TEST_USER}"
  - message: "id ${LOGCHECK_TEST_MISSING:-7}"
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "hello ann", *suite.Expect[0].Message)
	assert.Equal(t, "id 7", *suite.Expect[1].Message)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LOGCHECK_PORT", "8080")

	tests := []struct {
		input    string
		expected string
	}{
		{"no variables", "no variables"},
		{"port ${LOGCHECK_PORT}", "port 8080"},
		{"port ${LOGCHECK_PORT:-3000}", "port 8080"},
		{"port ${LOGCHECK_UNSET:-3000}", "port 3000"},
		{"port ${LOGCHECK_UNSET}", "port "},
		{"literal $LOGCHECK_PORT", "literal $LOGCHECK_PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandEnvVars(tt.input))
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("suite"))
}

func TestDiscoverSuite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(SuiteEnvVar, "")

	_, err := DiscoverSuite(dir)
	assert.ErrorIs(t, err, ErrFileNotFound)

	yml := filepath.Join(dir, "logcheck.yml")
	require.NoError(t, os.WriteFile(yml, []byte(`version: "1"`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logcheck.json"), []byte(`{"version":"1"}`), 0644))

	found, err := DiscoverSuite(dir)
	require.NoError(t, err)
	assert.Equal(t, yml, found)

	explicit := writeFile(t, "custom.yaml", `version: "1"`)
	t.Setenv(SuiteEnvVar, explicit)
	found, err = DiscoverSuite(dir)
	require.NoError(t, err)
	assert.Equal(t, explicit, found)

	t.Setenv(SuiteEnvVar, filepath.Join(dir, "nope.yaml"))
	_, err = DiscoverSuite(dir)
	assert.Error(t, err)
}
