// Package metadata defines the METADATA record embedded at the top of a block file and
// the reader, renderer and writer for its textual declaration.
package metadata

// DeclarationName is the identifier the record is bound to in block files.
const DeclarationName = "METADATA"

// InitialVersion is assigned to new records and to records whose version cannot be parsed.
const InitialVersion = "1.0.0"

// DateLayout is the format of the created and updated fields.
const DateLayout = "2006-01-02"

// BlockType classifies how a block is executed.
type BlockType string

const (
	BlockTemplate BlockType = "template"
	BlockFunction BlockType = "function"
	BlockScript   BlockType = "script"
)

// TemplateEntrypoint is the entrypoint recorded for template blocks.
const TemplateEntrypoint = "generate"

// Valid reports whether b is one of the three known block types.
func (b BlockType) Valid() bool {
	switch b {
	case BlockTemplate, BlockFunction, BlockScript:
		return true
	}
	return false
}

// ArgType is the inferred type of a template argument.
type ArgType string

const (
	ArgInt ArgType = "int"
	ArgStr ArgType = "str"
)

// ArgSpec describes one templated parameter.
type ArgSpec struct {
	Name     string  `json:"name" yaml:"name" toml:"name"`
	Type     ArgType `json:"type" yaml:"type" toml:"type"`
	Required bool    `json:"required" yaml:"required" toml:"required"`
	Default  any     `json:"default" yaml:"default" toml:"default,omitempty"`
}

// Record is the metadata of one block. Field order is the declaration order.
type Record struct {
	Name           string    `json:"name" yaml:"name" toml:"name"`
	Title          string    `json:"title" yaml:"title" toml:"title"`
	Description    string    `json:"description" yaml:"description" toml:"description"`
	Platform       []string  `json:"platform" yaml:"platform" toml:"platform"`
	Language       string    `json:"language" yaml:"language" toml:"language"`
	Category       string    `json:"category" yaml:"category" toml:"category"`
	Tags           []string  `json:"tags" yaml:"tags" toml:"tags"`
	Chainable      bool      `json:"chainable" yaml:"chainable" toml:"chainable"`
	OutputType     string    `json:"output_type" yaml:"output_type" toml:"output_type"`
	Imports        []string  `json:"import" yaml:"import" toml:"import"`
	RequiresAddons []string  `json:"requires_addons" yaml:"requires_addons" toml:"requires_addons"`
	Dependencies   []string  `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	Args           []ArgSpec `json:"args" yaml:"args" toml:"args"`
	BlockType      BlockType `json:"block_type" yaml:"block_type" toml:"block_type"`
	Entrypoint     string    `json:"entrypoint" yaml:"entrypoint" toml:"entrypoint"`
	Returns        string    `json:"returns" yaml:"returns" toml:"returns"`
	Author         string    `json:"author" yaml:"author" toml:"author"`
	Version        string    `json:"version" yaml:"version" toml:"version"`
	Created        string    `json:"created" yaml:"created" toml:"created"`
	Updated        string    `json:"updated" yaml:"updated" toml:"updated"`
}

// Field is one key/value entry of a rendered record.
type Field struct {
	Key   string
	Value any
}

// Fields returns the record's entries in declaration order.
func (r *Record) Fields() []Field {
	return []Field{
		{"name", r.Name},
		{"title", r.Title},
		{"description", r.Description},
		{"platform", r.Platform},
		{"language", r.Language},
		{"category", r.Category},
		{"tags", r.Tags},
		{"chainable", r.Chainable},
		{"output_type", r.OutputType},
		{"import", r.Imports},
		{"requires_addons", r.RequiresAddons},
		{"dependencies", r.Dependencies},
		{"args", r.Args},
		{"block_type", string(r.BlockType)},
		{"entrypoint", r.Entrypoint},
		{"returns", r.Returns},
		{"author", r.Author},
		{"version", r.Version},
		{"created", r.Created},
		{"updated", r.Updated},
	}
}
