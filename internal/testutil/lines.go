// Package testutil provides helpers for assembling metadata block TSV lines
// in tests without hand-counting tab characters.
package testutil

import "strings"

// BlockHeader is the canonical #metadataBlock header line.
const BlockHeader = "#metadataBlock\tname\tdataverseAlias\tdisplayName\tblockURI"

// FieldHeader is the canonical #datasetField header line.
const FieldHeader = "#datasetField\tname\ttitle\tdescription\twatermark\tfieldType" +
	"\tdisplayOrder\tdisplayFormat\tadvancedSearchField\tallowControlledVocabulary\tallowmultiples\tfacetable" +
	"\tdisplayoncreate\trequired\tparent\tmetadatablock_id\ttermURI"

// Line joins cells with tabs.
func Line(cells ...string) string {
	return strings.Join(cells, "\t")
}

// BlockLine assembles a #metadataBlock definition line. The leading trigger
// marker cell is always empty.
func BlockLine(name, alias, displayName, blockURI string) string {
	return Line("", name, alias, displayName, blockURI)
}

// FieldSpec carries the cells of one #datasetField row, with canonical
// defaults for everything a test does not care about.
type FieldSpec struct {
	Name                      string
	Title                     string
	Description               string
	Watermark                 string
	Type                      string
	DisplayOrder              string
	DisplayFormat             string
	AdvancedSearchField       string
	AllowControlledVocabulary string
	AllowMultiples            string
	Facetable                 string
	DisplayOnCreate           string
	Required                  string
	Parent                    string
	BlockID                   string
	TermURI                   string
}

// FieldLine assembles a #datasetField definition row from the spec,
// defaulting type to text, display order to 0, every flag to FALSE and the
// block id to "citation".
func FieldLine(spec FieldSpec) string {
	if spec.Type == "" {
		spec.Type = "text"
	}
	if spec.DisplayOrder == "" {
		spec.DisplayOrder = "0"
	}
	for _, flag := range []*string{
		&spec.AdvancedSearchField, &spec.AllowControlledVocabulary, &spec.AllowMultiples,
		&spec.Facetable, &spec.DisplayOnCreate, &spec.Required,
	} {
		if *flag == "" {
			*flag = "FALSE"
		}
	}
	if spec.BlockID == "" {
		spec.BlockID = "citation"
	}
	return Line("", spec.Name, spec.Title, spec.Description, spec.Watermark, spec.Type,
		spec.DisplayOrder, spec.DisplayFormat, spec.AdvancedSearchField, spec.AllowControlledVocabulary,
		spec.AllowMultiples, spec.Facetable, spec.DisplayOnCreate, spec.Required,
		spec.Parent, spec.BlockID, spec.TermURI)
}
