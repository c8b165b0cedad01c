package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mcncl/json2struct/internal/config"
	"github.com/mcncl/json2struct/internal/errors"
	"github.com/mcncl/json2struct/internal/models"
)

// Generator renders an analysis result through a template configuration.
type Generator struct {
	cfg *config.Config
}

// NewGenerator creates a new Generator for cfg.
func NewGenerator(cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Generator{cfg: cfg}
}

// Generate renders every struct in result in name order, wrapped in the file
// header and footer, then applies the brace replacements to the whole text.
// Output depends only on result and the configuration.
func (g *Generator) Generate(result models.AnalysisResult) (string, error) {
	var buf bytes.Buffer

	if g.cfg.FileHeader != nil {
		buf.WriteString(*g.cfg.FileHeader)
	}

	for _, name := range result.StructNames() {
		rendered, err := g.renderStruct(name, result.Structs[name], result)
		if err != nil {
			return "", err
		}
		buf.WriteString(rendered)
	}

	if g.cfg.FileFooter != nil {
		buf.WriteString(*g.cfg.FileFooter)
	}

	return g.cfg.ReplaceBraces(buf.String()), nil
}

func (g *Generator) renderStruct(name string, def models.StructDef, result models.AnalysisResult) (string, error) {
	var b strings.Builder

	writeOpt(&b, g.cfg.BeforeStruct)
	writeOpt(&b, g.cfg.BeforeStructName)
	b.WriteString(name)
	writeOpt(&b, g.cfg.AfterStructName)

	fieldNames := def.FieldNames()
	lines := make([]string, 0, len(fieldNames))
	for _, fieldName := range fieldNames {
		typeName, err := g.FieldType(def.Fields[fieldName], result)
		if err != nil {
			return "", errors.NewRenderError(fmt.Sprintf("field '%s' of struct '%s'", fieldName, name), err)
		}
		lines = append(lines, g.cfg.RenderField(fieldName, typeName))
	}
	b.WriteString(strings.Join(lines, g.cfg.Separator()))

	writeOpt(&b, g.cfg.AfterStruct)
	return b.String(), nil
}

func writeOpt(b *strings.Builder, s *string) {
	if s != nil {
		b.WriteString(*s)
	}
}

// FieldType maps a field's type and applies optional wrapping to the outermost
// type only: always for Null, and for everything when result.NullableFields is set.
func (g *Generator) FieldType(t models.InferredType, result models.AnalysisResult) (string, error) {
	mapped, err := g.MapType(t, result.Structs)
	if err != nil {
		return "", err
	}
	if t.IsNullable() || result.NullableFields {
		return g.cfg.WrapOptional(mapped), nil
	}
	return mapped, nil
}

// MapType spells t in the target language. Object references must name a
// struct in structs.
func (g *Generator) MapType(t models.InferredType, structs map[string]models.StructDef) (string, error) {
	switch t.Kind {
	case models.Array:
		inner := models.NullType()
		if t.Elem != nil {
			inner = *t.Elem
		}
		innerName, err := g.MapType(inner, structs)
		if err != nil {
			return "", err
		}
		return substituteT(g.cfg.PrimitiveName(models.Array), innerName), nil
	case models.Object:
		if _, ok := structs[t.Name]; !ok {
			return "", fmt.Errorf("struct '%s': %w", t.Name, errors.ErrUnknownStruct)
		}
		return substituteT(g.cfg.PrimitiveName(models.Object), t.Name), nil
	default:
		return g.cfg.PrimitiveName(t.Kind), nil
	}
}

func substituteT(template, value string) string {
	return strings.ReplaceAll(template, config.PlaceholderT, value)
}
