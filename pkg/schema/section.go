package schema

import "fmt"

// SubSection composes another section into a parent, optionally repeated.
type SubSection struct {
	Name        string `json:"name" yaml:"name"`
	Section     string `json:"section" yaml:"section"`
	Repeats     bool   `json:"repeats,omitempty" yaml:"repeats,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Section declares a record type: its label, ELN category, quantities, and
// sub-record composition. Sections are plain data; behaviour lives in the
// normalizers registered alongside them.
type Section struct {
	Name        string       `json:"name" yaml:"name"`
	Label       string       `json:"label,omitempty" yaml:"label,omitempty"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Quantities  []Quantity   `json:"quantities,omitempty" yaml:"quantities,omitempty"`
	SubSections []SubSection `json:"sub_sections,omitempty" yaml:"sub_sections,omitempty"`
}

// Validate checks structural consistency: unique quantity and sub-section
// names and well-formed quantity declarations.
func (s Section) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("section name required")
	}
	seen := make(map[string]struct{}, len(s.Quantities)+len(s.SubSections))
	for _, q := range s.Quantities {
		if err := q.validate(); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
		if _, dup := seen[q.Name]; dup {
			return fmt.Errorf("section %s: duplicate quantity %s", s.Name, q.Name)
		}
		seen[q.Name] = struct{}{}
	}
	for _, sub := range s.SubSections {
		if sub.Name == "" || sub.Section == "" {
			return fmt.Errorf("section %s: sub-section requires name and section", s.Name)
		}
		if _, dup := seen[sub.Name]; dup {
			return fmt.Errorf("section %s: duplicate sub-section %s", s.Name, sub.Name)
		}
		seen[sub.Name] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy so registries can hand out sections without
// sharing backing slices.
func (s Section) Clone() Section {
	cp := s
	cp.Quantities = make([]Quantity, len(s.Quantities))
	for i, q := range s.Quantities {
		cp.Quantities[i] = q.Clone()
	}
	cp.SubSections = append([]SubSection(nil), s.SubSections...)
	return cp
}

// Quantity returns the named quantity declaration, if present.
func (s Section) Quantity(name string) (Quantity, bool) {
	for _, q := range s.Quantities {
		if q.Name == name {
			return q.Clone(), true
		}
	}
	return Quantity{}, false
}
