package tsv

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Kind classifies a diagnostic. Structural diagnostics describe a line or
// section whose shape is wrong (column counts, ordering, unresolved
// references); value diagnostics describe a single cell failing its
// column's rule.
type Kind int

const (
	// KindValue marks a single-cell validation failure.
	KindValue Kind = iota
	// KindStructural marks a shape or cross-line failure.
	KindStructural
)

// Caller misuse of the builders. These signal defects in calling code, not
// bad input, and are therefore errors rather than diagnostics.
var (
	// ErrBlockAlreadyParsed is returned when a second block definition line
	// is fed to a BlockBuilder; the dialect allows exactly one per section.
	ErrBlockAlreadyParsed = errors.New("tsv: metadata block definition already parsed")
	// ErrNotParsed is returned by Build before any line parsed successfully.
	ErrNotParsed = errors.New("tsv: no line has been parsed successfully")
	// ErrFailed is returned by Build after a failed parse.
	ErrFailed = errors.New("tsv: builder recorded validation errors")
	// ErrFinalized is returned when rows are fed to a FieldsBuilder after
	// Finalize.
	ErrFinalized = errors.New("tsv: fields builder already finalized")
)

// IsStructural reports whether a diagnostic describes a structural failure.
func IsStructural(diag *hcl.Diagnostic) bool {
	k, ok := diag.Extra.(Kind)
	return ok && k == KindStructural
}

// IsValue reports whether a diagnostic describes a single-cell value failure.
func IsValue(diag *hcl.Diagnostic) bool {
	k, ok := diag.Extra.(Kind)
	return ok && k == KindValue
}

// cellRange points a diagnostic at a cell. Lines and columns are 1-based in
// ranges; lineNo is the 0-based input line index, column the 0-based cell
// index.
func cellRange(lineNo, column int) *hcl.Range {
	pos := hcl.Pos{Line: lineNo + 1, Column: column + 1}
	return &hcl.Range{Start: pos, End: pos}
}

// lineRange points a diagnostic at a whole line.
func lineRange(lineNo int) *hcl.Range {
	pos := hcl.Pos{Line: lineNo + 1, Column: 1}
	return &hcl.Range{Start: pos, End: pos}
}

// structuralDiag builds a structural error diagnostic.
func structuralDiag(subject *hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject,
		Extra:    KindStructural,
	}
}

// valueDiag builds a value error diagnostic for one cell of one column.
func valueDiag(lineNo, column int, col Column, value string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("invalid value %q for column %q", value, col.Name),
		Detail:   fmt.Sprintf("Column %q %s.", col.Name, col.Rule),
		Subject:  cellRange(lineNo, column),
		Extra:    KindValue,
	}
}
