// Package registry holds the catalog of stage kinds known to the completion engine.
//
// A catalog is published as an immutable Snapshot. Completion calls read one
// snapshot and never observe a partially refreshed catalog.
package registry

import (
	"strings"
)

// ValueType is the declared type of an option value
type ValueType string

// Supported option value types
const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeEnum    ValueType = "enum"
)

// valueTypeAliases maps accepted catalog spellings to a ValueType
var valueTypeAliases = map[string]ValueType{
	"":        TypeString,
	"string":  TypeString,
	"str":     TypeString,
	"number":  TypeNumber,
	"int":     TypeNumber,
	"integer": TypeNumber,
	"float":   TypeNumber,
	"long":    TypeNumber,
	"boolean": TypeBoolean,
	"bool":    TypeBoolean,
	"enum":    TypeEnum,
}

// ParseValueType normalizes a catalog type name
func ParseValueType(s string) (ValueType, bool) {
	t, ok := valueTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// OptionSpec declares one option accepted by a stage kind
type OptionSpec struct {
	Name          string
	Type          ValueType
	Description   string
	Default       string   // empty when the option has no default
	AllowedValues []string // enum literals, in declaration order
	Required      bool
}

// HasDefault reports whether a default value is declared
func (o OptionSpec) HasDefault() bool {
	return o.Default != ""
}

// StageKind is a named processing stage and its option schema
type StageKind struct {
	Name        string
	Description string
	Role        string // source, processor, sink or empty
	Options     []OptionSpec
}

// Option returns the option declared under name
func (k StageKind) Option(name string) (OptionSpec, bool) {
	for _, o := range k.Options {
		if o.Name == name {
			return o, true
		}
	}
	return OptionSpec{}, false
}

// MissingRequired returns the required options absent from set, in declaration order
func (k StageKind) MissingRequired(set map[string]string) []string {
	var missing []string
	for _, o := range k.Options {
		if !o.Required {
			continue
		}
		if _, ok := set[o.Name]; !ok {
			missing = append(missing, o.Name)
		}
	}
	return missing
}

func (k StageKind) clone() StageKind {
	out := k
	out.Options = make([]OptionSpec, len(k.Options))
	for i, o := range k.Options {
		o.AllowedValues = append([]string(nil), o.AllowedValues...)
		out.Options[i] = o
	}
	return out
}
