package models

import "sort"

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, boolean, nil, JSONObject or JSONArray.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// IntermediateRepresentation holds the parsed JSON document for the analyzer.
type IntermediateRepresentation struct {
	Root        JSONValue
	RootIsArray bool // True if the root of the JSON is an array vs an object
}

// Kind is the category of an inferred type.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	Array
	Object
)

var kindNames = map[Kind]string{
	Null:    "null",
	Bool:    "bool",
	Integer: "integer",
	Float:   "float",
	String:  "string",
	Array:   "array",
	Object:  "object",
}

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// InferredType is the classification assigned to a JSON value.
// Elem is set only for Array, Name only for Object.
type InferredType struct {
	Kind Kind
	Elem *InferredType
	Name string
}

func NullType() InferredType    { return InferredType{Kind: Null} }
func BoolType() InferredType    { return InferredType{Kind: Bool} }
func IntegerType() InferredType { return InferredType{Kind: Integer} }
func FloatType() InferredType   { return InferredType{Kind: Float} }
func StringType() InferredType  { return InferredType{Kind: String} }

// ArrayOf returns an array type with the given element type.
func ArrayOf(elem InferredType) InferredType {
	return InferredType{Kind: Array, Elem: &elem}
}

// ObjectRef returns a reference to the struct registered under name.
func ObjectRef(name string) InferredType {
	return InferredType{Kind: Object, Name: name}
}

// IsNullable reports whether the type itself signals a nullable value.
func (t InferredType) IsNullable() bool {
	return t.Kind == Null
}

// Equal compares two types structurally.
func (t InferredType) Equal(other InferredType) bool {
	if t.Kind != other.Kind || t.Name != other.Name {
		return false
	}
	if t.Kind != Array {
		return true
	}
	if t.Elem == nil || other.Elem == nil {
		return t.Elem == other.Elem
	}
	return t.Elem.Equal(*other.Elem)
}

// String renders a canonical key, e.g. "array<object<UserAddress>>".
// Two types are Equal exactly when their keys match.
func (t InferredType) String() string {
	switch t.Kind {
	case Array:
		if t.Elem == nil {
			return "array<null>"
		}
		return "array<" + t.Elem.String() + ">"
	case Object:
		return "object<" + t.Name + ">"
	default:
		return t.Kind.String()
	}
}

// StructDef is one inferred object shape: field name to inferred type.
type StructDef struct {
	Fields map[string]InferredType
}

// NewStructDef creates an empty struct definition.
func NewStructDef() StructDef {
	return StructDef{Fields: make(map[string]InferredType)}
}

// FieldNames returns the field names in lexicographic order.
func (s StructDef) FieldNames() []string {
	return sortedKeys(s.Fields)
}

// AnalysisResult is the struct map produced by one inference pass.
type AnalysisResult struct {
	Structs        map[string]StructDef
	RootName       string
	NullableFields bool
}

// StructNames returns the registered struct names in lexicographic order.
func (r AnalysisResult) StructNames() []string {
	return sortedKeys(r.Structs)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
