package analyzer

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mcncl/json2struct/internal/errors"
	"github.com/mcncl/json2struct/internal/models"
	"github.com/mcncl/json2struct/internal/naming"
)

// DefaultRootName is the default name for the root struct if not specified.
const DefaultRootName = "Root"

// Analyzer infers struct definitions from one JSON document.
// A struct name, once registered, is never redefined: the first object that
// derives a name fixes its shape and later objects with that name are skipped.
type Analyzer struct {
	structs        map[string]models.StructDef
	nullableFields bool
	namer          *naming.Namer
}

// NewAnalyzer creates a new Analyzer using snake_case field names.
func NewAnalyzer(nullableFields bool) *Analyzer {
	return NewAnalyzerWithNamer(nullableFields, nil)
}

// NewAnalyzerWithNamer creates a new Analyzer with a custom field namer.
func NewAnalyzerWithNamer(nullableFields bool, namer *naming.Namer) *Analyzer {
	return &Analyzer{
		structs:        make(map[string]models.StructDef),
		nullableFields: nullableFields,
		namer:          namer,
	}
}

// Analyze registers the root object under the sanitized rootStructName and
// everything reachable from it. A root array contributes only its first element.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation, rootStructName string) (models.AnalysisResult, error) {
	if rootStructName == "" {
		rootStructName = DefaultRootName
	}
	rootStructName = a.namer.StructName(rootStructName)

	root, err := rootObject(ir.Root)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	if err := a.ProcessObject(root, rootStructName); err != nil {
		return models.AnalysisResult{}, err
	}

	return models.AnalysisResult{
		Structs:        a.structs,
		RootName:       rootStructName,
		NullableFields: a.nullableFields,
	}, nil
}

func rootObject(root models.JSONValue) (models.JSONObject, error) {
	switch v := root.(type) {
	case models.JSONObject:
		return v, nil
	case models.JSONArray:
		if len(v) == 0 {
			return nil, errors.NewSchemaError("root array is empty", errors.ErrInvalidRoot)
		}
		first, ok := v[0].(models.JSONObject)
		if !ok {
			return nil, errors.NewSchemaError(fmt.Sprintf("first element of the root array is %s, not an object", describeValue(v[0])), errors.ErrInvalidRoot)
		}
		return first, nil
	default:
		return nil, errors.NewSchemaError(fmt.Sprintf("root value is %s", describeValue(root)), errors.ErrInvalidRoot)
	}
}

func describeValue(v models.JSONValue) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	case string:
		return "a string"
	case models.JSONArray:
		return "an array"
	case models.JSONObject:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// InferType classifies value. Objects are registered under parentStructName
// followed by the sanitized fieldKey.
func (a *Analyzer) InferType(value models.JSONValue, parentStructName, fieldKey string) (models.InferredType, error) {
	switch v := value.(type) {
	case nil:
		return models.NullType(), nil
	case bool:
		return models.BoolType(), nil
	case json.Number:
		return inferNumber(v), nil
	case string:
		return models.StringType(), nil
	case models.JSONArray:
		if len(v) == 0 {
			return models.ArrayOf(models.NullType()), nil
		}
		elem, err := a.InferType(v[0], parentStructName, fieldKey)
		if err != nil {
			return models.InferredType{}, err
		}
		return models.ArrayOf(elem), nil
	case models.JSONObject:
		childName := parentStructName + a.namer.StructName(fieldKey)
		if err := a.ProcessObject(v, childName); err != nil {
			return models.InferredType{}, err
		}
		return models.ObjectRef(childName), nil
	default:
		return models.InferredType{}, fmt.Errorf("unexpected json value type: %T", v)
	}
}

// inferNumber treats anything that parses as an int64 as Integer. Fractions,
// exponents and out-of-range values are Float.
func inferNumber(num json.Number) models.InferredType {
	if _, err := num.Int64(); err == nil {
		return models.IntegerType()
	}
	return models.FloatType()
}

// ProcessObject registers obj under structName unless that name is taken.
// Keys are visited in sorted order; when two keys sanitize to the same field
// name the later key wins.
func (a *Analyzer) ProcessObject(obj models.JSONObject, structName string) error {
	if _, exists := a.structs[structName]; exists {
		return nil
	}

	def := models.NewStructDef()

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fieldType, err := a.InferType(obj[key], structName, key)
		if err != nil {
			return fmt.Errorf("failed to analyze field '%s' in object '%s': %w", key, structName, err)
		}
		def.Fields[a.namer.FieldName(key)] = fieldType
	}

	a.structs[structName] = def
	return nil
}
