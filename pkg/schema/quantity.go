// Package schema defines the declarative metadata describing laboratory
// record types: named, typed, unit-bearing quantities plus the editor
// component hints consumed by the hosting ELN when rendering entry forms.
package schema

import (
	"fmt"
	"slices"
)

// Component identifies the ELN editor widget suggested for a quantity.
type Component string

// Editor component hints understood by the hosting framework.
const (
	ComponentStringEdit    Component = "StringEditQuantity"
	ComponentNumberEdit    Component = "NumberEditQuantity"
	ComponentRadioEnum     Component = "RadioEnumEditQuantity"
	ComponentBoolEdit      Component = "BoolEditQuantity"
	ComponentRichTextEdit  Component = "RichTextEditQuantity"
	ComponentReferenceEdit Component = "ReferenceEditQuantity"
	ComponentDateTimeEdit  Component = "DateTimeEditQuantity"
)

// Type enumerates the value types a quantity can carry.
type Type string

// Supported quantity value types.
const (
	TypeString Type = "string"
	TypeFloat  Type = "float64"
	TypeInt    Type = "int"
	TypeBool   Type = "bool"
	TypeEnum   Type = "enum"
	TypeRef    Type = "reference"
)

// Quantity declares a single record field: its value type, storage unit,
// preferred display unit, default value, and editor hint.
type Quantity struct {
	Name        string    `json:"name" yaml:"name"`
	Type        Type      `json:"type" yaml:"type"`
	Unit        string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	DisplayUnit string    `json:"display_unit,omitempty" yaml:"display_unit,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Component   Component `json:"component,omitempty" yaml:"component,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	// Target names the section a reference quantity points at.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	// Repeats marks list-shaped quantities.
	Repeats bool `json:"repeats,omitempty" yaml:"repeats,omitempty"`
}

func (q Quantity) validate() error {
	if q.Name == "" {
		return fmt.Errorf("quantity name required")
	}
	switch q.Type {
	case TypeString, TypeFloat, TypeInt, TypeBool:
	case TypeEnum:
		if len(q.Enum) == 0 {
			return fmt.Errorf("quantity %s: enum type without values", q.Name)
		}
		if d, ok := q.Default.(string); ok && !slices.Contains(q.Enum, d) {
			return fmt.Errorf("quantity %s: default %q not an enum value", q.Name, d)
		}
	case TypeRef:
		if q.Target == "" {
			return fmt.Errorf("quantity %s: reference type without target", q.Name)
		}
	default:
		return fmt.Errorf("quantity %s: unknown type %q", q.Name, q.Type)
	}
	if q.DisplayUnit != "" && q.Unit == "" {
		return fmt.Errorf("quantity %s: display unit without storage unit", q.Name)
	}
	return nil
}

// Clone returns a deep copy of the quantity.
func (q Quantity) Clone() Quantity {
	cp := q
	cp.Enum = append([]string(nil), q.Enum...)
	return cp
}
