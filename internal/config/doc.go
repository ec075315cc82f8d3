// Package config defines the dialect configuration for a parse run: the
// comment and trigger prefixes, the column separator, and the feature flag
// for nested field hierarchies.
//
// A `config.Configuration` is the single source of truth for the `tsv`
// package. It is created once per run, either from the built-in defaults or
// from an optional YAML file, and is read-only thereafter.
package config
