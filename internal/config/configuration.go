package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration holds the dialect settings for a single parse run. It is an
// immutable value; create one per run (or use Default) and never mutate it.
type Configuration struct {
	commentPrefix         string
	triggerPrefix         string
	columnSeparator       string
	allowDeepFieldNesting bool
}

// New validates and creates a Configuration. Empty comment, trigger or
// separator values are construction-time errors.
func New(commentPrefix, triggerPrefix, columnSeparator string, allowDeepFieldNesting bool) (Configuration, error) {
	if commentPrefix == "" {
		return Configuration{}, fmt.Errorf("comment prefix may not be empty")
	}
	if triggerPrefix == "" {
		return Configuration{}, fmt.Errorf("trigger prefix may not be empty")
	}
	if columnSeparator == "" {
		return Configuration{}, fmt.Errorf("column separator may not be empty")
	}
	return Configuration{
		commentPrefix:         commentPrefix,
		triggerPrefix:         triggerPrefix,
		columnSeparator:       columnSeparator,
		allowDeepFieldNesting: allowDeepFieldNesting,
	}, nil
}

// Default returns the dialect defaults: "%%" comments, "#" triggers,
// tab-separated columns, field nesting disabled.
func Default() Configuration {
	return Configuration{
		commentPrefix:   "%%",
		triggerPrefix:   "#",
		columnSeparator: "\t",
	}
}

// CommentPrefix returns the prefix marking a comment line.
func (c Configuration) CommentPrefix() string { return c.commentPrefix }

// TriggerPrefix returns the prefix marking a section trigger line.
func (c Configuration) TriggerPrefix() string { return c.triggerPrefix }

// ColumnSeparator returns the cell separator for header and data lines.
func (c Configuration) ColumnSeparator() string { return c.columnSeparator }

// DeepFieldNestingEnabled reports whether field rows may reference a parent.
func (c Configuration) DeepFieldNestingEnabled() bool { return c.allowDeepFieldNesting }

// Trigger builds the trigger string for a section keyword, e.g. "#metadataBlock".
func (c Configuration) Trigger(keyword string) string {
	return c.triggerPrefix + keyword
}

// RTrimColumns strips a trailing run of column separators from a line,
// tolerating producers that pad lines with empty cells.
func (c Configuration) RTrimColumns(line string) string {
	for strings.HasSuffix(line, c.columnSeparator) {
		line = strings.TrimSuffix(line, c.columnSeparator)
	}
	return line
}

// fileConfig is the YAML shape of an optional dialect configuration file.
// Absent keys keep their defaults.
type fileConfig struct {
	CommentPrefix    *string `yaml:"comment_prefix"`
	TriggerPrefix    *string `yaml:"trigger_prefix"`
	ColumnSeparator  *string `yaml:"column_separator"`
	AllowDeepNesting *bool   `yaml:"allow_deep_nesting"`
}

// LoadFile reads a YAML dialect configuration file and merges it over the
// defaults. Explicitly empty prefixes or separators are rejected, as by New.
func LoadFile(path string) (Configuration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("reading configuration file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Configuration{}, fmt.Errorf("decoding configuration file %s: %w", path, err)
	}

	cfg := Default()
	comment, trigger, sep := cfg.commentPrefix, cfg.triggerPrefix, cfg.columnSeparator
	nesting := cfg.allowDeepFieldNesting
	if fc.CommentPrefix != nil {
		comment = *fc.CommentPrefix
	}
	if fc.TriggerPrefix != nil {
		trigger = *fc.TriggerPrefix
	}
	if fc.ColumnSeparator != nil {
		sep = *fc.ColumnSeparator
	}
	if fc.AllowDeepNesting != nil {
		nesting = *fc.AllowDeepNesting
	}
	return New(comment, trigger, sep, nesting)
}
