package schema

import "testing"

func validSection() Section {
	return Section{
		Name:     "substrate",
		Label:    "Forematics Substrate",
		Category: "ICMAB Forematics",
		Quantities: []Quantity{
			{Name: "supplier", Type: TypeString, Default: "Ossila", Component: ComponentStringEdit},
			{Name: "length", Type: TypeFloat, Unit: "m", DisplayUnit: "mm", Component: ComponentNumberEdit},
			{Name: "size", Type: TypeEnum, Enum: []string{"Scale-up", "Spin-coating"}, Default: "Scale-up", Component: ComponentRadioEnum},
		},
		SubSections: []SubSection{
			{Name: "entities", Section: "substrate_reference", Repeats: true},
		},
	}
}

func TestSectionValidate(t *testing.T) {
	if err := validSection().Validate(); err != nil {
		t.Fatalf("valid section rejected: %v", err)
	}
}

func TestSectionValidateRejectsDuplicates(t *testing.T) {
	s := validSection()
	s.Quantities = append(s.Quantities, Quantity{Name: "supplier", Type: TypeString})
	if err := s.Validate(); err == nil {
		t.Fatalf("expected duplicate quantity error")
	}
}

func TestSectionValidateRejectsEnumDefaultOutsideValues(t *testing.T) {
	s := validSection()
	s.Quantities[2].Default = "Dip-coating"
	if err := s.Validate(); err == nil {
		t.Fatalf("expected enum default error")
	}
}

func TestSectionValidateRejectsDisplayUnitWithoutUnit(t *testing.T) {
	s := validSection()
	s.Quantities[1].Unit = ""
	if err := s.Validate(); err == nil {
		t.Fatalf("expected display unit error")
	}
}

func TestSectionValidateRejectsReferenceWithoutTarget(t *testing.T) {
	s := validSection()
	s.Quantities = append(s.Quantities, Quantity{Name: "batch", Type: TypeRef})
	if err := s.Validate(); err == nil {
		t.Fatalf("expected reference target error")
	}
}

func TestSectionCloneIsDeep(t *testing.T) {
	s := validSection()
	cp := s.Clone()
	cp.Quantities[0].Default = "Sigma"
	cp.Quantities[2].Enum[0] = "mutated"
	if s.Quantities[0].Default != "Ossila" {
		t.Fatalf("clone shares quantity backing data")
	}
	if s.Quantities[2].Enum[0] != "Scale-up" {
		t.Fatalf("clone shares enum backing slice")
	}
}

func TestSectionQuantityLookup(t *testing.T) {
	s := validSection()
	q, ok := s.Quantity("length")
	if !ok {
		t.Fatalf("expected length quantity")
	}
	if q.DisplayUnit != "mm" {
		t.Fatalf("unexpected display unit %q", q.DisplayUnit)
	}
	if _, ok := s.Quantity("missing"); ok {
		t.Fatalf("unexpected lookup hit")
	}
}
