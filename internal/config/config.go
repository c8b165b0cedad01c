package config

import (
	"fmt"
	"strings"

	"github.com/mcncl/json2struct/internal/models"
	"github.com/mcncl/json2struct/internal/naming"
)

// Placeholders recognized inside templates.
const (
	PlaceholderName = "$NAME"
	PlaceholderType = "$TYPE"
	PlaceholderT    = "$T"
)

// Config describes how one target language spells a struct.
// Every template is optional; nil means "use the default".
type Config struct {
	FileHeader *string `toml:"file_header" yaml:"file_header"`
	FileFooter *string `toml:"file_footer" yaml:"file_footer"`

	BeforeStruct     *string `toml:"before_struct" yaml:"before_struct"`
	AfterStruct      *string `toml:"after_struct" yaml:"after_struct"`
	BeforeStructName *string `toml:"before_struct_name" yaml:"before_struct_name"`
	AfterStructName  *string `toml:"after_struct_name" yaml:"after_struct_name"`

	LeftBraceReplaceBy  *string `toml:"left_brace_replace_by" yaml:"left_brace_replace_by"`
	RightBraceReplaceBy *string `toml:"right_brace_replace_by" yaml:"right_brace_replace_by"`

	EachAttrFormat *string `toml:"each_attr_format" yaml:"each_attr_format"`

	Boolean *string `toml:"boolean" yaml:"boolean"`
	Number  *string `toml:"number" yaml:"number"`
	Integer *string `toml:"integer" yaml:"integer"`
	Float   *string `toml:"float" yaml:"float"`
	String  *string `toml:"string" yaml:"string"`
	Array   *string `toml:"array" yaml:"array"`
	Object  *string `toml:"object" yaml:"object"`
	Null    *string `toml:"null" yaml:"null"`

	Optional *string `toml:"optional" yaml:"optional"`

	Indent         *string `toml:"indent" yaml:"indent"`
	FieldSeparator *string `toml:"field_separator" yaml:"field_separator"`

	FileExtension *string  `toml:"file_extension" yaml:"file_extension"`
	FieldCase     *string  `toml:"field_case" yaml:"field_case"`
	ReservedWords []string `toml:"reserved_words" yaml:"reserved_words"`
}

// Defaults for unset keys.
const (
	DefaultOptional       = "Option<$T>"
	DefaultFieldSeparator = "\n"
	DefaultFileExtension  = "txt"
)

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// Str is a convenience for building configs in code.
func Str(s string) *string {
	return &s
}

// Validate rejects values the renderer cannot use.
func (c *Config) Validate() error {
	fieldCase := naming.FieldCase(valueOr(c.FieldCase, ""))
	if !fieldCase.Valid() {
		return fmt.Errorf("unknown field_case %q (want snake, camel or pascal)", fieldCase)
	}
	if c.FileExtension != nil && strings.ContainsAny(*c.FileExtension, `/\`) {
		return fmt.Errorf("file_extension %q must not contain a path separator", *c.FileExtension)
	}
	return nil
}

// Namer returns the field namer this configuration asks for.
func (c *Config) Namer() *naming.Namer {
	return naming.NewNamer(naming.FieldCase(valueOr(c.FieldCase, string(naming.SnakeCase))), c.ReservedWords)
}

func (c *Config) IndentText() string {
	return valueOr(c.Indent, "")
}

func (c *Config) Separator() string {
	return valueOr(c.FieldSeparator, DefaultFieldSeparator)
}

func (c *Config) Extension() string {
	return strings.TrimPrefix(valueOr(c.FileExtension, DefaultFileExtension), ".")
}

// PrimitiveName maps a non-container kind to its target spelling. Integer and
// Float fall back to the number override before the canonical name.
func (c *Config) PrimitiveName(kind models.Kind) string {
	switch kind {
	case models.Bool:
		return valueOr(c.Boolean, "bool")
	case models.Integer:
		return valueOr(c.Integer, valueOr(c.Number, "number"))
	case models.Float:
		return valueOr(c.Float, valueOr(c.Number, "number"))
	case models.String:
		return valueOr(c.String, "string")
	case models.Array:
		return valueOr(c.Array, "array")
	case models.Object:
		return valueOr(c.Object, "object")
	default:
		return valueOr(c.Null, "null")
	}
}

// WrapOptional substitutes typeName into the optional template.
func (c *Config) WrapOptional(typeName string) string {
	return strings.ReplaceAll(valueOr(c.Optional, DefaultOptional), PlaceholderT, typeName)
}

// RenderField renders one field line. Without each_attr_format the line is
// "<indent><name>: <type>".
func (c *Config) RenderField(name, typeName string) string {
	if c.EachAttrFormat == nil {
		return c.IndentText() + name + ": " + typeName
	}
	return strings.NewReplacer(PlaceholderName, name, PlaceholderType, typeName).Replace(*c.EachAttrFormat)
}

// ReplaceBraces applies the brace replacement tokens in a single pass, so a
// replacement containing the other brace is left alone.
func (c *Config) ReplaceBraces(s string) string {
	var pairs []string
	if c.LeftBraceReplaceBy != nil {
		pairs = append(pairs, "{", *c.LeftBraceReplaceBy)
	}
	if c.RightBraceReplaceBy != nil {
		pairs = append(pairs, "}", *c.RightBraceReplaceBy)
	}
	if len(pairs) == 0 {
		return s
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
