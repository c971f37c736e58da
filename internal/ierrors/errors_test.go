package ierrors

import "testing"

func TestNewDivideByZeroCarriesBlockAndObject(t *testing.T) {
	err := NewDivideByZero("b1", "obj1")
	if err.Kind != ArithmeticDomain {
		t.Errorf("Kind = %v, want ArithmeticDomain", err.Kind)
	}
	if err.BlockID != "b1" || err.ObjectID != "obj1" {
		t.Errorf("BlockID/ObjectID = %q/%q, want b1/obj1", err.BlockID, err.ObjectID)
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestNewParamValueDomainCarriesOpcode(t *testing.T) {
	err := NewParamValueDomain("b2", "repeat_basic", "obj2", "count must not be negative", "count=-1")
	if err.Kind != ParamValueDomain {
		t.Errorf("Kind = %v, want ParamValueDomain", err.Kind)
	}
	if err.Opcode != "repeat_basic" {
		t.Errorf("Opcode = %q, want repeat_basic", err.Opcode)
	}
	if err.Human != "count must not be negative" {
		t.Errorf("Human = %q", err.Human)
	}
}
