package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "%%", cfg.CommentPrefix())
	assert.Equal(t, "#", cfg.TriggerPrefix())
	assert.Equal(t, "\t", cfg.ColumnSeparator())
	assert.False(t, cfg.DeepFieldNestingEnabled())
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name      string
		comment   string
		trigger   string
		separator string
		expectErr bool
	}{
		{name: "defaults", comment: "%%", trigger: "#", separator: "\t"},
		{name: "custom separator", comment: "%%", trigger: "#", separator: ";"},
		{name: "empty comment", comment: "", trigger: "#", separator: "\t", expectErr: true},
		{name: "empty trigger", comment: "%%", trigger: "", separator: "\t", expectErr: true},
		{name: "empty separator", comment: "%%", trigger: "#", separator: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.comment, tc.trigger, tc.separator, false)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTrigger(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "#metadataBlock", cfg.Trigger("metadataBlock"))
	assert.Equal(t, "#datasetField", cfg.Trigger("datasetField"))
}

func TestRTrimColumns(t *testing.T) {
	cfg := Default()

	testCases := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "no trailing separators", line: "a\tb\tc", expected: "a\tb\tc"},
		{name: "single trailing separator", line: "a\tb\t", expected: "a\tb"},
		{name: "run of trailing separators", line: "a\tb\t\t\t", expected: "a\tb"},
		{name: "inner separators kept", line: "a\t\tb", expected: "a\t\tb"},
		{name: "empty line", line: "", expected: ""},
		{name: "separators only", line: "\t\t", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cfg.RTrimColumns(tc.line))
		})
	}
}

func TestLoadFile(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "mdbtsv.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("partial override keeps defaults", func(t *testing.T) {
		cfg, err := LoadFile(writeFile(t, "column_separator: \";\"\nallow_deep_nesting: true\n"))
		require.NoError(t, err)
		assert.Equal(t, ";", cfg.ColumnSeparator())
		assert.True(t, cfg.DeepFieldNestingEnabled())
		assert.Equal(t, "%%", cfg.CommentPrefix())
		assert.Equal(t, "#", cfg.TriggerPrefix())
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		cfg, err := LoadFile(writeFile(t, ""))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("explicit empty separator rejected", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "column_separator: \"\"\n"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "column_separator: [\n"))
		require.Error(t, err)
	})
}
