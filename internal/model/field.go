package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdcc/mdb/internal/validate"
)

// Field is a typed, orderable attribute belonging to exactly one metadata
// block, optionally nested under a parent field. Instances only come out of
// a FieldBuilder and are immutable, except for the parent/child links set
// once during hierarchy resolution.
type Field struct {
	name                      string
	title                     string
	description               string
	watermark                 string
	fieldType                 FieldType
	displayOrder              int
	displayFormat             string
	advancedSearchField       bool
	allowControlledVocabulary bool
	allowMultiples            bool
	facetable                 bool
	displayOnCreate           bool
	required                  bool
	block                     Block
	termURI                   *url.URL

	parent   *Field
	children []*Field
}

// Name returns the field's identifier.
func (f *Field) Name() string { return f.name }

// Title returns the short human-readable label.
func (f *Field) Title() string { return f.title }

// Description returns the longer help text. May be empty.
func (f *Field) Description() string { return f.description }

// Watermark returns the input placeholder text. May be empty.
func (f *Field) Watermark() string { return f.watermark }

// Type returns the field's value type.
func (f *Field) Type() FieldType { return f.fieldType }

// DisplayOrder returns the non-negative display position of the field.
func (f *Field) DisplayOrder() int { return f.displayOrder }

// DisplayFormat returns the rendering format. May be empty.
func (f *Field) DisplayFormat() string { return f.displayFormat }

// AdvancedSearchField reports whether the field appears in advanced search.
func (f *Field) AdvancedSearchField() bool { return f.advancedSearchField }

// AllowControlledVocabulary reports whether values come from a controlled vocabulary.
func (f *Field) AllowControlledVocabulary() bool { return f.allowControlledVocabulary }

// AllowMultiples reports whether the field may hold multiple values.
func (f *Field) AllowMultiples() bool { return f.allowMultiples }

// Facetable reports whether the field may be used as a search facet.
func (f *Field) Facetable() bool { return f.facetable }

// DisplayOnCreate reports whether the field shows on the dataset creation form.
func (f *Field) DisplayOnCreate() bool { return f.displayOnCreate }

// Required reports whether a value is mandatory.
func (f *Field) Required() bool { return f.required }

// Block returns the metadata block the field belongs to.
func (f *Field) Block() Block { return f.block }

// TermURI returns the term URI of the field. When none was declared it
// defaults to the block URI extended with the field name.
func (f *Field) TermURI() *url.URL {
	if f.termURI != nil {
		return f.termURI
	}
	base := strings.TrimSuffix(f.block.BlockURI().String(), "/")
	u, err := url.Parse(base + "/" + f.name)
	if err != nil {
		// The block URI and field name were both validated, so joining
		// them cannot produce an unparsable URL.
		return f.block.BlockURI()
	}
	return u
}

// Parent returns the parent field, or nil for a top-level field.
func (f *Field) Parent() *Field { return f.parent }

// Children returns the child fields in declaration order. Never nil.
func (f *Field) Children() []*Field { return f.children }

// Equal reports whether two fields share the same name.
func (f *Field) Equal(other *Field) bool {
	return other != nil && f.name == other.name
}

// LinkParent attaches f under parent and records f as the parent's child,
// preserving call order. A field can be linked at most once.
func (f *Field) LinkParent(parent *Field) error {
	if f.parent != nil {
		return fmt.Errorf("field %q is already linked to parent %q", f.name, f.parent.name)
	}
	if parent == nil {
		return fmt.Errorf("field %q cannot be linked to a nil parent", f.name)
	}
	f.parent = parent
	parent.children = append(parent.children, f)
	return nil
}

// FieldBuilder assembles a Field bound to its containing block. Each setter
// validates immediately; Build succeeds only once every required attribute
// has been set. Not safe for concurrent use.
type FieldBuilder struct {
	block Block
	types *TypeRegistry

	name          string
	title         string
	fieldType     FieldType
	typeSet       bool
	displayOrder  int
	orderSet      bool
	blockNameSeen bool

	description               string
	watermark                 string
	displayFormat             string
	advancedSearchField       bool
	allowControlledVocabulary bool
	allowMultiples            bool
	facetable                 bool
	displayOnCreate           bool
	required                  bool
	termURI                   *url.URL
}

// NewField returns a FieldBuilder bound to the given containing block,
// resolving type ids against the given registry.
func NewField(block Block, types *TypeRegistry) *FieldBuilder {
	return &FieldBuilder{block: block, types: types}
}

// WithName sets the field name.
func (b *FieldBuilder) WithName(name string) error {
	if !validate.FieldName(name) {
		return fmt.Errorf("field name %q must not be blank and match pattern %s", name, validate.FieldNamePattern)
	}
	b.name = name
	return nil
}

// WithTitle sets the label, which must be non-blank and shorter than 60 characters.
func (b *FieldBuilder) WithTitle(title string) error {
	if !validate.NonBlank(title) || utf8.RuneCountInString(title) >= 60 {
		return fmt.Errorf("title %q must not be blank and be shorter than 60 chars", title)
	}
	b.title = title
	return nil
}

// WithDescription sets the help text. Whitespace-only values are rejected.
func (b *FieldBuilder) WithDescription(description string) error {
	if !validate.EmptyOrNonBlank(description) {
		return fmt.Errorf("description must not be whitespace only")
	}
	b.description = description
	return nil
}

// WithWatermark sets the placeholder text. Whitespace-only values are rejected.
func (b *FieldBuilder) WithWatermark(watermark string) error {
	if !validate.EmptyOrNonBlank(watermark) {
		return fmt.Errorf("watermark must not be whitespace only")
	}
	b.watermark = watermark
	return nil
}

// WithType resolves the type id against the registry and sets the field type.
func (b *FieldBuilder) WithType(typeID string) error {
	t, ok := b.types.Lookup(typeID)
	if !ok {
		return fmt.Errorf("unknown field type %q", typeID)
	}
	b.fieldType = t
	b.typeSet = true
	return nil
}

// WithDisplayOrder parses and sets the display position, which must be a
// non-negative integer.
func (b *FieldBuilder) WithDisplayOrder(displayOrder string) error {
	n, err := strconv.ParseUint(displayOrder, 10, 31)
	if err != nil {
		return fmt.Errorf("display order %q must be a non-negative number", displayOrder)
	}
	b.displayOrder = int(n)
	b.orderSet = true
	return nil
}

// WithDisplayFormat sets the rendering format. Whitespace-only values are rejected.
func (b *FieldBuilder) WithDisplayFormat(displayFormat string) error {
	if !validate.EmptyOrNonBlank(displayFormat) {
		return fmt.Errorf("display format must not be whitespace only")
	}
	b.displayFormat = displayFormat
	return nil
}

// WithMetadataBlock checks the declared block name against the containing
// block the builder is bound to. A foreign block name is a value error.
func (b *FieldBuilder) WithMetadataBlock(name string) error {
	if name != b.block.Name() {
		return fmt.Errorf("field metadata block name %q does not match containing block %q", name, b.block.Name())
	}
	b.blockNameSeen = true
	return nil
}

// parseBool enforces the canonical literals: exactly TRUE or FALSE.
func parseBool(value, column string) (bool, error) {
	if !validate.StrictBool(value) {
		return false, fmt.Errorf("%s value %q must be literally TRUE or FALSE", column, value)
	}
	return value == "TRUE", nil
}

// WithAdvancedSearchField sets the advanced-search flag from its literal.
func (b *FieldBuilder) WithAdvancedSearchField(value string) error {
	v, err := parseBool(value, "advancedSearchField")
	if err != nil {
		return err
	}
	b.advancedSearchField = v
	return nil
}

// WithAllowControlledVocabulary sets the controlled-vocabulary flag from its literal.
func (b *FieldBuilder) WithAllowControlledVocabulary(value string) error {
	v, err := parseBool(value, "allowControlledVocabulary")
	if err != nil {
		return err
	}
	b.allowControlledVocabulary = v
	return nil
}

// WithAllowMultiples sets the multi-value flag from its literal.
func (b *FieldBuilder) WithAllowMultiples(value string) error {
	v, err := parseBool(value, "allowmultiples")
	if err != nil {
		return err
	}
	b.allowMultiples = v
	return nil
}

// WithFacetable sets the facet flag from its literal.
func (b *FieldBuilder) WithFacetable(value string) error {
	v, err := parseBool(value, "facetable")
	if err != nil {
		return err
	}
	b.facetable = v
	return nil
}

// WithDisplayOnCreate sets the creation-form flag from its literal.
func (b *FieldBuilder) WithDisplayOnCreate(value string) error {
	v, err := parseBool(value, "displayoncreate")
	if err != nil {
		return err
	}
	b.displayOnCreate = v
	return nil
}

// WithRequired sets the mandatory flag from its literal.
func (b *FieldBuilder) WithRequired(value string) error {
	v, err := parseBool(value, "required")
	if err != nil {
		return err
	}
	b.required = v
	return nil
}

// WithTermURI sets the term URI. Empty leaves the default namespace
// (block URI plus field name) to apply; anything else must be a valid URL.
func (b *FieldBuilder) WithTermURI(value string) error {
	if value == "" {
		return nil
	}
	if !validate.URL(value) {
		return fmt.Errorf("term URI %q must either be a valid URI or empty", value)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("term URI %q must either be a valid URI or empty: %w", value, err)
	}
	b.termURI = u
	return nil
}

// Build finalizes the Field. It fails when a required attribute is missing.
func (b *FieldBuilder) Build() (*Field, error) {
	if b.name == "" || b.title == "" || !b.typeSet || !b.orderSet || !b.blockNameSeen {
		return nil, fmt.Errorf("cannot build field: name, title, type, display order and metadata block must all be set")
	}
	return &Field{
		name:                      b.name,
		title:                     b.title,
		description:               b.description,
		watermark:                 b.watermark,
		fieldType:                 b.fieldType,
		displayOrder:              b.displayOrder,
		displayFormat:             b.displayFormat,
		advancedSearchField:       b.advancedSearchField,
		allowControlledVocabulary: b.allowControlledVocabulary,
		allowMultiples:            b.allowMultiples,
		facetable:                 b.facetable,
		displayOnCreate:           b.displayOnCreate,
		required:                  b.required,
		block:                     b.block,
		termURI:                   b.termURI,
		children:                  []*Field{},
	}, nil
}
