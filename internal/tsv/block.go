package tsv

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/gdcc/mdb/internal/config"
	"github.com/gdcc/mdb/internal/model"
	"github.com/gdcc/mdb/internal/validate"
)

// blockState is the explicit life cycle of a BlockBuilder. Illegal
// transitions are checked errors, never silent.
type blockState int

const (
	blockAwaitingLine blockState = iota
	blockParsed
	blockFailed
)

// BlockBuilder parses the single definition line of a #metadataBlock
// section. The header line is validated at construction, so no builder
// exists with an unknown column contract. Not safe for concurrent use.
type BlockBuilder struct {
	cfg     config.Configuration
	columns []Column
	state   blockState
	block   model.Block
}

// NewBlockBuilder validates the section's header line and returns a builder
// ready for the definition line. A header with missing, misordered or
// renamed columns fails construction.
func NewBlockBuilder(headerLine string, lineNo int, cfg config.Configuration) (*BlockBuilder, hcl.Diagnostics) {
	columns := BlockColumns(cfg)
	if diags := ValidateHeader(headerLine, columns, lineNo, cfg); diags.HasErrors() {
		return nil, diags
	}
	return &BlockBuilder{cfg: cfg, columns: columns}, nil
}

// ParseLine parses and validates a metadata block definition line.
//
// Data problems come back as diagnostics: a blank line, a column count not
// matching the header (which short-circuits cell checks), or any number of
// invalid cells, all collected in one pass. Feeding a second line after a
// success is caller misuse and returns ErrBlockAlreadyParsed.
func (b *BlockBuilder) ParseLine(lineNo int, line string) (hcl.Diagnostics, error) {
	if b.state == blockParsed {
		return nil, ErrBlockAlreadyParsed
	}

	var diags hcl.Diagnostics
	if !validate.NonBlank(line) {
		b.state = blockFailed
		return diags.Append(structuralDiag(lineRange(lineNo),
			"empty metadata block definition",
			"The definition line must not be empty, blank or missing.")), nil
	}

	// Split the raw line: a trailing separator marks a legitimately empty
	// last cell, so data lines are never right-trimmed.
	cells := strings.Split(line, b.cfg.ColumnSeparator())
	if len(cells) != len(b.columns) {
		b.state = blockFailed
		return diags.Append(structuralDiag(lineRange(lineNo),
			"wrong column count in metadata block definition",
			fmt.Sprintf("The line has %d columns but the header declares %d.", len(cells), len(b.columns)))), nil
	}

	for i, col := range b.columns {
		if !col.Valid(cells[i]) {
			diags = diags.Append(valueDiag(lineNo, i, col, cells[i]))
		}
	}
	if diags.HasErrors() {
		b.state = blockFailed
		return diags, nil
	}

	block, err := buildBlock(cells)
	if err != nil {
		// Cells already passed the column rules, so the entity builder
		// cannot reject them; treat a slip as a structural failure.
		b.state = blockFailed
		return diags.Append(structuralDiag(lineRange(lineNo), "metadata block construction failed", err.Error())), nil
	}

	b.block = block
	b.state = blockParsed
	return nil, nil
}

// buildBlock funnels validated cells through the entity builder.
func buildBlock(cells []string) (model.Block, error) {
	mb := model.NewBlock()
	if err := mb.WithName(cells[blockColName]); err != nil {
		return model.Block{}, err
	}
	if err := mb.WithDataverseAlias(cells[blockColAlias]); err != nil {
		return model.Block{}, err
	}
	if err := mb.WithDisplayName(cells[blockColDisplayName]); err != nil {
		return model.Block{}, err
	}
	if err := mb.WithBlockURI(cells[blockColURI]); err != nil {
		return model.Block{}, err
	}
	return mb.Build()
}

// Succeeded reports whether a definition line has been parsed successfully.
func (b *BlockBuilder) Succeeded() bool {
	return b.state == blockParsed
}

// Build returns the finished Block, annotated with the input line index of
// the last line belonging to its section. Calling it before a successful
// ParseLine (ErrNotParsed) or after a failed one (ErrFailed) is caller
// misuse.
func (b *BlockBuilder) Build(endLineIndex int) (model.Block, error) {
	switch b.state {
	case blockParsed:
		return b.block.WithLastLine(endLineIndex), nil
	case blockFailed:
		return model.Block{}, ErrFailed
	default:
		return model.Block{}, ErrNotParsed
	}
}
