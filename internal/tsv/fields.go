package tsv

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/gdcc/mdb/internal/config"
	"github.com/gdcc/mdb/internal/model"
	"github.com/gdcc/mdb/internal/validate"
)

// fieldRow is one accepted data row: the flat field plus what is needed for
// the deferred hierarchy resolution.
type fieldRow struct {
	field     *model.Field
	lineNo    int
	parentRef string
}

// FieldsBuilder parses the N data rows of a #datasetField section, bound to
// the metadata block the section belongs to. Rows are validated and
// collected independently; the parent/child hierarchy is resolved in
// Finalize, because a parent may be declared before or after its children.
// Not safe for concurrent use.
type FieldsBuilder struct {
	cfg     config.Configuration
	columns []Column
	block   model.Block
	types   *model.TypeRegistry

	rows    []fieldRow
	byName  map[string]*model.Field
	lineOf  map[string]int
	final   []*model.Field
	diags   hcl.Diagnostics
	stopped bool
}

// NewFieldsBuilder validates the section's header line and returns a
// builder bound to the containing block; fields declaring a different block
// are rejected per row.
func NewFieldsBuilder(headerLine string, lineNo int, block model.Block, types *model.TypeRegistry, cfg config.Configuration) (*FieldsBuilder, hcl.Diagnostics) {
	columns := FieldColumns(cfg, types)
	if diags := ValidateHeader(headerLine, columns, lineNo, cfg); diags.HasErrors() {
		return nil, diags
	}
	return &FieldsBuilder{
		cfg:     cfg,
		columns: columns,
		block:   block,
		types:   types,
		byName:  make(map[string]*model.Field),
		lineOf:  make(map[string]int),
	}, nil
}

// ParseLine parses and validates one field definition row. On success the
// field is appended to the builder's collection; on failure all of the
// row's problems come back as diagnostics and prior rows are unaffected.
// Feeding rows after Finalize is caller misuse and returns ErrFinalized.
func (b *FieldsBuilder) ParseLine(lineNo int, line string) (hcl.Diagnostics, error) {
	if b.stopped {
		return nil, ErrFinalized
	}

	var diags hcl.Diagnostics
	if !validate.NonBlank(line) {
		return diags.Append(structuralDiag(lineRange(lineNo),
			"empty field definition",
			"The definition row must not be empty, blank or missing.")), nil
	}

	cells := strings.Split(line, b.cfg.ColumnSeparator())
	if len(cells) != len(b.columns) {
		return diags.Append(structuralDiag(lineRange(lineNo),
			"wrong column count in field definition",
			fmt.Sprintf("The row has %d columns but the header declares %d.", len(cells), len(b.columns)))), nil
	}

	for i, col := range b.columns {
		if !col.Valid(cells[i]) {
			diags = diags.Append(valueDiag(lineNo, i, col, cells[i]))
		}
	}

	// The block binding and name uniqueness are cross-line rules on top of
	// the per-cell ones.
	if name := cells[fieldColBlockID]; validate.NonBlank(name) && name != b.block.Name() {
		diags = diags.Append(valueDiag(lineNo, fieldColBlockID, Column{
			Name: b.columns[fieldColBlockID].Name,
			Rule: fmt.Sprintf("must name the containing metadata block %q", b.block.Name()),
		}, name))
	}
	if name := cells[fieldColName]; validate.FieldName(name) {
		if _, ok := b.byName[name]; ok {
			diags = diags.Append(structuralDiag(cellRange(lineNo, fieldColName),
				fmt.Sprintf("duplicate field name %q", name),
				fmt.Sprintf("The field is already defined at line %d.", b.lineOf[name]+1)))
		}
	}

	if diags.HasErrors() {
		return diags, nil
	}

	field, err := b.buildField(cells)
	if err != nil {
		return diags.Append(structuralDiag(lineRange(lineNo), "field construction failed", err.Error())), nil
	}

	b.rows = append(b.rows, fieldRow{field: field, lineNo: lineNo, parentRef: cells[fieldColParent]})
	b.byName[field.Name()] = field
	b.lineOf[field.Name()] = lineNo
	return nil, nil
}

// buildField funnels validated cells through the entity builder.
func (b *FieldsBuilder) buildField(cells []string) (*model.Field, error) {
	fb := model.NewField(b.block, b.types)
	steps := []error{
		fb.WithName(cells[fieldColName]),
		fb.WithTitle(cells[fieldColTitle]),
		fb.WithDescription(cells[fieldColDescription]),
		fb.WithWatermark(cells[fieldColWatermark]),
		fb.WithType(cells[fieldColType]),
		fb.WithDisplayOrder(cells[fieldColDisplayOrder]),
		fb.WithDisplayFormat(cells[fieldColDisplayFormat]),
		fb.WithAdvancedSearchField(cells[fieldColAdvancedSearch]),
		fb.WithAllowControlledVocabulary(cells[fieldColControlledVocab]),
		fb.WithAllowMultiples(cells[fieldColAllowMultiples]),
		fb.WithFacetable(cells[fieldColFacetable]),
		fb.WithDisplayOnCreate(cells[fieldColDisplayOnCreate]),
		fb.WithRequired(cells[fieldColRequired]),
		fb.WithMetadataBlock(cells[fieldColBlockID]),
		fb.WithTermURI(cells[fieldColTermURI]),
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}
	return fb.Build()
}

// Fields returns the rows accepted so far, in declaration order. Useful for
// callers that keep going after per-row failures.
func (b *FieldsBuilder) Fields() []*model.Field {
	fields := make([]*model.Field, len(b.rows))
	for i := range b.rows {
		fields[i] = b.rows[i].field
	}
	return fields
}

// Finalize resolves the parent/child hierarchy over all accepted rows and
// returns the finished fields. Parent references may point forward or
// backward; an unresolved reference, a reference while nesting is disabled,
// and a cyclic chain are structural errors. Finalize is idempotent: repeated
// calls return the first result.
func (b *FieldsBuilder) Finalize() ([]*model.Field, hcl.Diagnostics) {
	if b.stopped {
		return b.final, b.diags
	}
	b.stopped = true

	var diags hcl.Diagnostics
	for i := range b.rows {
		row := &b.rows[i]
		if row.parentRef == "" {
			continue
		}
		if !b.cfg.DeepFieldNestingEnabled() {
			diags = diags.Append(structuralDiag(cellRange(row.lineNo, fieldColParent),
				fmt.Sprintf("field %q declares a parent but nesting is disabled", row.field.Name()),
				"Enable deep field nesting to use parent references."))
			continue
		}
		parent, ok := b.byName[row.parentRef]
		if !ok {
			diags = diags.Append(structuralDiag(cellRange(row.lineNo, fieldColParent),
				fmt.Sprintf("field %q references unknown parent %q", row.field.Name(), row.parentRef),
				"The parent must be defined in the same dataset field section."))
			continue
		}
		if err := row.field.LinkParent(parent); err != nil {
			diags = diags.Append(structuralDiag(cellRange(row.lineNo, fieldColParent),
				"field hierarchy linking failed", err.Error()))
		}
	}

	diags = diags.Extend(b.detectCycles())

	b.final = b.Fields()
	b.diags = diags
	return b.final, diags
}

// detectCycles walks every parent chain with a visited set. Chains are
// finite unless linking produced a loop, which the walk surfaces instead of
// spinning.
func (b *FieldsBuilder) detectCycles() hcl.Diagnostics {
	var diags hcl.Diagnostics
	reported := make(map[string]bool)

	for i := range b.rows {
		start := b.rows[i].field
		seen := map[string]bool{start.Name(): true}
		for p := start.Parent(); p != nil; p = p.Parent() {
			if seen[p.Name()] {
				if !reported[p.Name()] {
					// Mark the whole chain so one cycle yields one diagnostic.
					for name := range seen {
						reported[name] = true
					}
					diags = diags.Append(structuralDiag(cellRange(b.rows[i].lineNo, fieldColParent),
						fmt.Sprintf("cyclic parent chain through field %q", p.Name()),
						"Parent references must form a tree, never a cycle."))
				}
				break
			}
			seen[p.Name()] = true
		}
	}
	return diags
}
