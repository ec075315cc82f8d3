// Package tsv implements the line-by-line parsing and validation engine for
// the metadata-block TSV dialect.
//
// The dialect is fixed-shape: a section starts with a trigger header line
// ("#metadataBlock" or "#datasetField" followed by the canonical column
// names), and every data line after it must carry exactly the header's
// column count. Header names are matched case-insensitively and positionally;
// cell values are validated case-sensitively against per-column rules.
//
// Validation problems are reported as hcl.Diagnostics: every invalid cell of
// a line is collected before the line is rejected, so a user fixing a
// malformed row sees all of its problems in one pass. Caller misuse of the
// builders (building before parsing, feeding a second block definition) is a
// plain error, not a diagnostic.
//
// Builders are stateful and not safe for concurrent use on the same
// instance; parse independent sections with independent builders.
package tsv
