/*
Package schemagen derives JSON schemas from Go types. A struct type maps
to an object schema with one property per exported field, in declaration
order; pointer fields are optional, all other fields are required. Nested
struct types are resolved recursively and embedded inline, so the result
is a single self-contained schema document.

Field descriptions come from `description` struct tags. A type can
describe itself by implementing the Describer interface, and a named
string type can enumerate its values by implementing the Enum interface.
*/
package schemagen

import (
	"reflect"
	"strings"
	"sync"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"

	openai "github.com/zxss702/go-openai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Describer is implemented by types which carry their own schema
// description, attached to the root of the derived schema.
type Describer interface {
	SchemaDescription() string
}

// Enum is implemented by string types with a fixed set of allowed
// values. The values are emitted in the order returned.
type Enum interface {
	Enum() []string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	describerType = reflect.TypeOf((*Describer)(nil)).Elem()
	enumType      = reflect.TypeOf((*Enum)(nil)).Elem()
	timeType      = reflect.TypeOf(time.Time{})
)

var (
	customMu sync.RWMutex
	custom   = make(map[reflect.Type]*jsonschema.Schema)
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]*jsonschema.Schema)
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// RegisterType maps a Go type to a fixed scalar schema in subsequent
// derivations. The zero value of the type is used for registration, so
// pointer fields of the type share the mapping. Call before the first
// derivation of any type which embeds it.
func RegisterType(zero any, jsonType, format string) error {
	if zero == nil || jsonType == "" {
		return openai.ErrBadParameter.With("RegisterType")
	}
	customMu.Lock()
	defer customMu.Unlock()
	custom[reflect.TypeOf(zero)] = &jsonschema.Schema{Type: jsonType, Format: format}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// For derives the schema for type T.
func For[T any]() (*jsonschema.Schema, error) {
	return ForType(reflect.TypeOf((*T)(nil)).Elem())
}

// ForType derives the schema for a reflected type. Struct schemas are
// cached, since a type's schema is a pure function of its definition;
// the returned schema is a deep copy the caller may mutate.
func ForType(t reflect.Type) (*jsonschema.Schema, error) {
	if t == nil {
		return nil, openai.ErrBadParameter.With("nil type")
	}
	schema, err := schemaForType(t, make(map[reflect.Type]bool))
	if err != nil {
		return nil, err
	}
	return schema, nil
}

// EmptyObject returns the schema for an object with no properties.
func EmptyObject() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
		Required:   []string{},
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func schemaForType(t reflect.Type, seen map[reflect.Type]bool) (*jsonschema.Schema, error) {
	// Unwrap one level of optionality
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	// Registered custom mappings take precedence
	customMu.RLock()
	mapped, ok := custom[t]
	customMu.RUnlock()
	if ok {
		return mapped.CloneSchemas(), nil
	}

	// Enumerated string types
	if t.Implements(enumType) || reflect.PointerTo(t).Implements(enumType) {
		return enumSchema(t)
	}

	switch t.Kind() {
	case reflect.String:
		return describe(t, &jsonschema.Schema{Type: "string"}), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return describe(t, &jsonschema.Schema{Type: "integer"}), nil
	case reflect.Float32, reflect.Float64:
		return describe(t, &jsonschema.Schema{Type: "number"}), nil
	case reflect.Bool:
		return describe(t, &jsonschema.Schema{Type: "boolean"}), nil
	case reflect.Slice, reflect.Array:
		items, err := schemaForType(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return describe(t, &jsonschema.Schema{Type: "array", Items: items}), nil
	case reflect.Struct:
		if t == timeType {
			return &jsonschema.Schema{Type: "string", Format: "date-time"}, nil
		}
		return structSchema(t, seen)
	default:
		// Maps, interfaces and anything else collapse to a free-form object
		return describe(t, &jsonschema.Schema{Type: "object"}), nil
	}
}

func structSchema(t reflect.Type, seen map[reflect.Type]bool) (*jsonschema.Schema, error) {
	if seen[t] {
		return nil, openai.ErrBadParameter.Withf("cyclic type %q", t.String())
	}
	seen[t] = true
	defer delete(seen, t)

	// Serve cached derivations as deep copies
	cacheMu.RLock()
	cached, ok := cache[t]
	cacheMu.RUnlock()
	if ok {
		return cached.CloneSchemas(), nil
	}

	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
		Required:   []string{},
	}
	describe(t, schema)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous {
			// Flatten embedded structs into the parent object
			embedded, err := schemaForType(field.Type, seen)
			if err != nil {
				return nil, err
			}
			for name, prop := range embedded.Properties {
				schema.Properties[name] = prop
			}
			schema.Required = append(schema.Required, embedded.Required...)
			continue
		}

		name := jsonName(field)
		if name == "" {
			continue
		}

		prop, err := schemaForType(field.Type, seen)
		if err != nil {
			return nil, err
		}
		if description := field.Tag.Get("description"); description != "" {
			prop.Description = description
		}
		schema.Properties[name] = prop
		if field.Type.Kind() != reflect.Pointer {
			schema.Required = append(schema.Required, name)
		}
	}

	cacheMu.Lock()
	cache[t] = schema.CloneSchemas()
	cacheMu.Unlock()

	return schema, nil
}

func enumSchema(t reflect.Type) (*jsonschema.Schema, error) {
	switch t.Kind() {
	case reflect.String:
		// Supported
	case reflect.Struct:
		return nil, openai.ErrBadParameter.Withf("enum type %q carries associated values", t.String())
	default:
		return nil, openai.ErrBadParameter.Withf("enum type %q is not string-backed", t.String())
	}
	var values []string
	if t.Implements(enumType) {
		values = reflect.New(t).Elem().Interface().(Enum).Enum()
	} else {
		values = reflect.New(t).Interface().(Enum).Enum()
	}
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return describe(t, &jsonschema.Schema{Type: "string", Enum: enum}), nil
}

// describe attaches the type's own description to the schema root,
// when the type implements Describer.
func describe(t reflect.Type, schema *jsonschema.Schema) *jsonschema.Schema {
	if t.Implements(describerType) {
		schema.Description = reflect.New(t).Elem().Interface().(Describer).SchemaDescription()
	} else if reflect.PointerTo(t).Implements(describerType) {
		schema.Description = reflect.New(t).Interface().(Describer).SchemaDescription()
	}
	return schema
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	} else if name == "" {
		return field.Name
	}
	return name
}
