package tsv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/gdcc/mdb/internal/config"
	"github.com/gdcc/mdb/internal/ctxlog"
	"github.com/gdcc/mdb/internal/model"
	"github.com/gdcc/mdb/internal/validate"
)

// Document is the fully validated object graph of one metadata block TSV
// input: the single block definition and its fields, hierarchy resolved.
type Document struct {
	Block  model.Block
	Fields []*model.Field
}

// section is a trigger header line plus the data lines following it.
type section struct {
	keyword    string
	headerLine string
	headerNo   int
	dataLines  []string
	dataNos    []int
	endNo      int
}

// ParseDocument walks pre-decoded input lines, splits them into trigger
// sections, and runs the block and field builders over them. Comment lines
// and blank lines between sections are skipped. The input must contain
// exactly one #metadataBlock section, and it must precede the #datasetField
// section. All diagnostics of all sections are aggregated; the returned
// document is only meaningful when the diagnostics carry no errors.
func ParseDocument(ctx context.Context, lines []string, types *model.TypeRegistry, cfg config.Configuration) (*Document, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing metadata block document.", "lines", len(lines))

	doc := &Document{Fields: []*model.Field{}}

	sections, diags := splitSections(lines, cfg)
	logger.Debug("Sections detected.", "count", len(sections))

	var blockSeen, blockOK bool
	for _, sec := range sections {
		switch {
		case strings.EqualFold(sec.keyword, BlockKeyword):
			if blockSeen {
				diags = diags.Append(structuralDiag(lineRange(sec.headerNo),
					"duplicate metadata block section",
					"The input must declare exactly one #"+BlockKeyword+" section."))
				continue
			}
			blockSeen = true

			block, blockDiags := parseBlockSectionLines(sec, cfg)
			diags = diags.Extend(blockDiags)
			if !blockDiags.HasErrors() {
				doc.Block = block
				blockOK = true
			}

		case strings.EqualFold(sec.keyword, FieldKeyword):
			if !blockOK {
				diags = diags.Append(structuralDiag(lineRange(sec.headerNo),
					"dataset field section without metadata block",
					"A valid #"+BlockKeyword+" section must precede the #"+FieldKeyword+" section."))
				continue
			}
			fields, fieldDiags := parseFieldSectionLines(sec, doc.Block, types, cfg)
			diags = diags.Extend(fieldDiags)
			doc.Fields = append(doc.Fields, fields...)

		default:
			diags = diags.Append(structuralDiag(lineRange(sec.headerNo),
				fmt.Sprintf("unknown section keyword %q", sec.keyword),
				fmt.Sprintf("Supported sections are #%s and #%s.", BlockKeyword, FieldKeyword)))
		}
	}

	if !blockSeen {
		diags = diags.Append(structuralDiag(lineRange(0),
			"missing metadata block section",
			"The input must declare a #"+BlockKeyword+" section."))
	}

	logger.Debug("Document parse finished.", "fields", len(doc.Fields), "diagnostics", len(diags))
	return doc, diags
}

// splitSections groups input lines into trigger sections, dropping comment
// lines and blank lines. A data line before the first trigger has no
// section to belong to and is a structural error.
func splitSections(lines []string, cfg config.Configuration) ([]section, hcl.Diagnostics) {
	var sections []section
	var diags hcl.Diagnostics
	var current *section

	for i, line := range lines {
		if strings.HasPrefix(line, cfg.CommentPrefix()) || !validate.NonBlank(line) {
			continue
		}
		if strings.HasPrefix(line, cfg.TriggerPrefix()) {
			if current != nil {
				sections = append(sections, *current)
			}
			keyword := strings.TrimPrefix(firstCell(line, cfg), cfg.TriggerPrefix())
			current = &section{keyword: keyword, headerLine: line, headerNo: i, endNo: i}
			continue
		}
		if current == nil {
			diags = diags.Append(structuralDiag(lineRange(i),
				"data line outside any section",
				"Every data line must follow a #"+BlockKeyword+" or #"+FieldKeyword+" trigger line."))
			continue
		}
		current.dataLines = append(current.dataLines, line)
		current.dataNos = append(current.dataNos, i)
		current.endNo = i
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections, diags
}

// firstCell returns the first column of a line.
func firstCell(line string, cfg config.Configuration) string {
	cell, _, _ := strings.Cut(line, cfg.ColumnSeparator())
	return cell
}

// parseBlockSectionLines runs a BlockBuilder over one section.
func parseBlockSectionLines(sec section, cfg config.Configuration) (model.Block, hcl.Diagnostics) {
	builder, diags := NewBlockBuilder(sec.headerLine, sec.headerNo, cfg)
	if diags.HasErrors() {
		return model.Block{}, diags
	}

	if len(sec.dataLines) == 0 {
		return model.Block{}, diags.Append(structuralDiag(lineRange(sec.headerNo),
			"metadata block section without definition",
			"The section header must be followed by exactly one definition line."))
	}

	for i, line := range sec.dataLines {
		lineDiags, err := builder.ParseLine(sec.dataNos[i], line)
		if errors.Is(err, ErrBlockAlreadyParsed) {
			diags = diags.Append(structuralDiag(lineRange(sec.dataNos[i]),
				"more than one metadata block definition",
				"The section permits exactly one definition line."))
			continue
		}
		diags = diags.Extend(lineDiags)
	}
	if diags.HasErrors() {
		return model.Block{}, diags
	}

	block, err := builder.Build(sec.endNo)
	if err != nil {
		return model.Block{}, diags.Append(structuralDiag(lineRange(sec.headerNo),
			"metadata block section invalid", err.Error()))
	}
	return block, diags
}

// parseFieldSectionLines runs a FieldsBuilder over one section. Row errors
// do not abort later rows.
func parseFieldSectionLines(sec section, block model.Block, types *model.TypeRegistry, cfg config.Configuration) ([]*model.Field, hcl.Diagnostics) {
	builder, diags := NewFieldsBuilder(sec.headerLine, sec.headerNo, block, types, cfg)
	if diags.HasErrors() {
		return nil, diags
	}

	for i, line := range sec.dataLines {
		rowDiags, err := builder.ParseLine(sec.dataNos[i], line)
		if err != nil {
			diags = diags.Append(structuralDiag(lineRange(sec.dataNos[i]),
				"field row rejected", err.Error()))
			continue
		}
		diags = diags.Extend(rowDiags)
	}

	fields, finalDiags := builder.Finalize()
	return fields, diags.Extend(finalDiags)
}

// ParseBlockSection parses one header line and one definition line into a
// Block. This is the single-section surface; ParseDocument covers whole
// inputs.
func ParseBlockSection(headerLine, dataLine string, lineNo int, cfg config.Configuration) (model.Block, hcl.Diagnostics) {
	sec := section{
		headerLine: headerLine,
		headerNo:   lineNo,
		dataLines:  []string{dataLine},
		dataNos:    []int{lineNo + 1},
		endNo:      lineNo + 1,
	}
	return parseBlockSectionLines(sec, cfg)
}

// ParseFieldSection parses a header line and N data rows into the fields of
// the given block, hierarchy resolved.
func ParseFieldSection(headerLine string, block model.Block, types *model.TypeRegistry, dataLines []string, lineNo int, cfg config.Configuration) ([]*model.Field, hcl.Diagnostics) {
	sec := section{headerLine: headerLine, headerNo: lineNo, endNo: lineNo + len(dataLines)}
	for i, line := range dataLines {
		sec.dataLines = append(sec.dataLines, line)
		sec.dataNos = append(sec.dataNos, lineNo+1+i)
	}
	return parseFieldSectionLines(sec, block, types, cfg)
}
