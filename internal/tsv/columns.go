package tsv

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"

	"github.com/gdcc/mdb/internal/config"
	"github.com/gdcc/mdb/internal/model"
	"github.com/gdcc/mdb/internal/validate"
)

// Section keywords of the dialect. Combined with the configured trigger
// prefix they form the first header column, e.g. "#metadataBlock".
const (
	BlockKeyword = "metadataBlock"
	FieldKeyword = "datasetField"
)

// Column is one entry of a header contract: its canonical name, the rule a
// cell in this column must satisfy, and the rule's description for
// diagnostics. Header names compare case-insensitively; cell values are
// validated exactly as written.
type Column struct {
	Name  string
	Valid func(string) bool
	Rule  string
}

// Positional indexes into BlockColumns.
const (
	blockColKeyword = iota
	blockColName
	blockColAlias
	blockColDisplayName
	blockColURI
)

// BlockColumns returns the ordered column contract of a #metadataBlock
// section. The sequence order is the authoritative column order.
func BlockColumns(cfg config.Configuration) []Column {
	return []Column{
		{
			Name:  cfg.Trigger(BlockKeyword),
			Valid: func(s string) bool { return s == "" },
			Rule:  "must have no value (be empty)",
		},
		{
			Name:  "name",
			Valid: validate.BlockName,
			Rule:  "must not be blank and match pattern " + validate.BlockNamePattern,
		},
		{
			Name:  "dataverseAlias",
			Valid: func(s string) bool { return s == "" || validate.CollectionAlias(s) },
			Rule:  "must be either empty or match pattern " + validate.CollectionAliasPattern,
		},
		{
			Name:  "displayName",
			Valid: func(s string) bool { return validate.NonBlank(s) && utf8.RuneCountInString(s) <= 256 },
			Rule:  "must not be blank and be no longer than 256 chars",
		},
		{
			Name:  "blockURI",
			Valid: validate.URL,
			Rule:  "must be a valid URL",
		},
	}
}

// Positional indexes into FieldColumns.
const (
	fieldColKeyword = iota
	fieldColName
	fieldColTitle
	fieldColDescription
	fieldColWatermark
	fieldColType
	fieldColDisplayOrder
	fieldColDisplayFormat
	fieldColAdvancedSearch
	fieldColControlledVocab
	fieldColAllowMultiples
	fieldColFacetable
	fieldColDisplayOnCreate
	fieldColRequired
	fieldColParent
	fieldColBlockID
	fieldColTermURI
)

// FieldColumns returns the ordered column contract of a #datasetField
// section. The field type rule is resolved against the given registry at
// validation time, so consumer-registered types are accepted.
func FieldColumns(cfg config.Configuration, types *model.TypeRegistry) []Column {
	strictBoolRule := "must be literally TRUE or FALSE"
	return []Column{
		{
			Name:  cfg.Trigger(FieldKeyword),
			Valid: func(s string) bool { return s == "" },
			Rule:  "must have no value (be empty)",
		},
		{
			Name:  "name",
			Valid: validate.FieldName,
			Rule:  "must not be blank and match pattern " + validate.FieldNamePattern,
		},
		{
			Name:  "title",
			Valid: func(s string) bool { return validate.NonBlank(s) && utf8.RuneCountInString(s) < 60 },
			Rule:  "must not be blank and be shorter than 60 chars",
		},
		{
			Name:  "description",
			Valid: validate.EmptyOrNonBlank,
			Rule:  "must be either empty or not blank",
		},
		{
			Name:  "watermark",
			Valid: validate.EmptyOrNonBlank,
			Rule:  "must be either empty or not blank",
		},
		{
			Name:  "fieldType",
			Valid: types.Exists,
			Rule:  "must be a registered field type",
		},
		{
			Name:  "displayOrder",
			Valid: validate.NonNegativeInt,
			Rule:  "must be a non-negative number",
		},
		{
			Name:  "displayFormat",
			Valid: validate.EmptyOrNonBlank,
			Rule:  "must be either empty or not blank",
		},
		{Name: "advancedSearchField", Valid: validate.StrictBool, Rule: strictBoolRule},
		{Name: "allowControlledVocabulary", Valid: validate.StrictBool, Rule: strictBoolRule},
		{Name: "allowmultiples", Valid: validate.StrictBool, Rule: strictBoolRule},
		{Name: "facetable", Valid: validate.StrictBool, Rule: strictBoolRule},
		{Name: "displayoncreate", Valid: validate.StrictBool, Rule: strictBoolRule},
		{Name: "required", Valid: validate.StrictBool, Rule: strictBoolRule},
		{
			Name:  "parent",
			Valid: func(s string) bool { return s == "" || validate.FieldName(s) },
			Rule:  "must be either empty or match pattern " + validate.FieldNamePattern,
		},
		{
			Name:  "metadatablock_id",
			Valid: validate.NonBlank,
			Rule:  "must name the containing metadata block",
		},
		{
			Name:  "termURI",
			Valid: func(s string) bool { return s == "" || validate.URL(s) },
			Rule:  "must be either empty or a valid URI",
		},
	}
}

// ValidateHeader matches a literal header line against the expected column
// contract. Names are compared case-insensitively at each position; a wrong
// column count fails without positional checks, and every mismatching
// position is reported.
func ValidateHeader(line string, expected []Column, lineNo int, cfg config.Configuration) hcl.Diagnostics {
	var diags hcl.Diagnostics

	if !validate.NonBlank(line) {
		return diags.Append(structuralDiag(lineRange(lineNo),
			"empty header line",
			"The header line must not be empty, blank or missing."))
	}

	cells := strings.Split(cfg.RTrimColumns(line), cfg.ColumnSeparator())
	if len(cells) != len(expected) {
		return diags.Append(structuralDiag(lineRange(lineNo),
			"wrong header column count",
			fmt.Sprintf("The header declares %d columns but the contract requires exactly %d.", len(cells), len(expected))))
	}

	for i, col := range expected {
		if !strings.EqualFold(cells[i], col.Name) {
			diags = diags.Append(structuralDiag(cellRange(lineNo, i),
				fmt.Sprintf("unexpected header column %q", cells[i]),
				fmt.Sprintf("Position %d must be named %q (case does not matter).", i+1, col.Name)))
		}
	}
	return diags
}
