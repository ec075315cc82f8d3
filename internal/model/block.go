package model

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/gdcc/mdb/internal/validate"
)

// Block is a named schema grouping a set of dataset fields. It is immutable
// and always valid: instances only come out of a BlockBuilder.
//
// Identity is the block name; two blocks with the same name are the same
// block regardless of their other attributes.
type Block struct {
	name           string
	dataverseAlias string
	displayName    string
	blockURI       *url.URL
	lastLine       int
}

// Name returns the block's identifier.
func (b Block) Name() string { return b.name }

// DataverseAlias returns the collection alias the block is scoped to, and
// whether one is set.
func (b Block) DataverseAlias() (string, bool) {
	return b.dataverseAlias, b.dataverseAlias != ""
}

// DisplayName returns the human-readable block name.
func (b Block) DisplayName() string { return b.displayName }

// BlockURI returns the namespace URI of the block.
func (b Block) BlockURI() *url.URL { return b.blockURI }

// LastLine returns the input line index of the last line belonging to the
// block's section, for downstream line-numbered reporting. Zero when the
// block was not built from a sectioned input.
func (b Block) LastLine() int { return b.lastLine }

// WithLastLine returns a copy of the block annotated with the index of the
// last input line of its section.
func (b Block) WithLastLine(index int) Block {
	b.lastLine = index
	return b
}

// Equal reports whether two blocks share the same name.
func (b Block) Equal(other Block) bool { return b.name == other.name }

// BlockBuilder assembles a Block attribute by attribute. Each setter
// validates immediately and rejects bad values; Build succeeds only once
// every required attribute has been set. Not safe for concurrent use.
type BlockBuilder struct {
	name        string
	alias       string
	displayName string
	blockURI    *url.URL
}

// NewBlock returns a fresh BlockBuilder.
func NewBlock() *BlockBuilder {
	return &BlockBuilder{}
}

// WithName sets the block name. The name must match the block name rules:
// lowercase start, no double underscores, no ALL-CAPS runs.
func (b *BlockBuilder) WithName(name string) error {
	if !validate.BlockName(name) {
		return fmt.Errorf("block name %q must not be blank and match pattern %s", name, validate.BlockNamePattern)
	}
	b.name = name
	return nil
}

// WithDataverseAlias sets the optional collection alias. An empty value
// clears the alias; anything else must match the alias rules.
func (b *BlockBuilder) WithDataverseAlias(alias string) error {
	if alias != "" && !validate.CollectionAlias(alias) {
		return fmt.Errorf("dataverse alias %q must be either empty or match pattern %s", alias, validate.CollectionAliasPattern)
	}
	b.alias = alias
	return nil
}

// WithDisplayName sets the human-readable name, which must be non-blank and
// shorter than 257 characters.
func (b *BlockBuilder) WithDisplayName(displayName string) error {
	if !validate.NonBlank(displayName) || utf8.RuneCountInString(displayName) > 256 {
		return fmt.Errorf("display name must not be blank and no longer than 256 chars")
	}
	b.displayName = displayName
	return nil
}

// WithBlockURI sets the namespace URI. Not necessarily resolvable, but it
// must be a well-formed URL; it provides the default namespace for the
// block's fields.
func (b *BlockBuilder) WithBlockURI(blockURI string) error {
	if !validate.URL(blockURI) {
		return fmt.Errorf("block URI %q must be a valid URL", blockURI)
	}
	u, err := url.Parse(blockURI)
	if err != nil {
		return fmt.Errorf("block URI %q must be a valid URL: %w", blockURI, err)
	}
	b.blockURI = u
	return nil
}

// Build finalizes the Block. It fails when a required attribute is missing.
func (b *BlockBuilder) Build() (Block, error) {
	if b.name == "" || b.displayName == "" || b.blockURI == nil {
		return Block{}, fmt.Errorf("cannot build block: name, display name and block URI must all be set")
	}
	return Block{
		name:           b.name,
		dataverseAlias: b.alias,
		displayName:    b.displayName,
		blockURI:       b.blockURI,
	}, nil
}
