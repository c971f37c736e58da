package interp

import (
	"testing"

	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

func withVariable(ip *Interp, id, owner, value string) {
	ip.Env.Vars.LoadProject(&model.Project{Variables: []model.VariableDef{
		{ID: id, Name: id, VariableType: "variable", Object: owner, Value: value},
	}})
}

func TestHandleSetVariableWritesThroughStore(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	withVariable(ip, "v1", "", "0")
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpSetVariable, Params: []*model.Param{{Literal: "v1"}, {Literal: "42"}}}
	handleSetVariable(ip, "a", th, b)
	if got := ip.Env.Vars.Get("v1", "a"); got != "42" {
		t.Errorf("variable v1 = %q, want 42", got)
	}
}

func TestHandleChangeVariableAddsNumerically(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	withVariable(ip, "v1", "", "10")
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpChangeVariable, Params: []*model.Param{{Literal: "v1"}, {Literal: 5.0}}}
	handleChangeVariable(ip, "a", th, b)
	if got := ip.Env.Vars.Get("v1", "a"); got != "15" {
		t.Errorf("variable v1 = %q, want 15", got)
	}
}

func TestHandleAddValueToListAppendsThroughStore(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	ip.Env.Vars.LoadProject(&model.Project{Variables: []model.VariableDef{
		{ID: "L", Name: "L", VariableType: "list", Array: []string{}},
	}})
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpAddValueToList, Params: []*model.Param{{Literal: "L"}, {Literal: "hi"}}}
	handleAddValueToList(ip, "a", th, b)
	if got := ip.Env.Vars.ListValueAt("L", "a", "1", 0); got != "hi" {
		t.Errorf("L[1] = %q, want hi", got)
	}
}

func TestHandleAskAndWaitSuspendsThenCompletesOnResume(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpAskAndWait, Params: []*model.Param{{Literal: "what is your name?"}}}

	res := handleAskAndWait(ip, "a", th, b)
	if res.Outcome != Suspended {
		t.Fatalf("first call should suspend awaiting text input, got %v", res.Outcome)
	}
	if _, asked := th.BodyCursor[b.ID]; !asked {
		t.Fatal("BodyCursor should mark this ask as already issued")
	}

	res = handleAskAndWait(ip, "a", th, b)
	if res.Outcome != Completed {
		t.Fatalf("second call (post-resume) should complete, got %v", res.Outcome)
	}
	if _, asked := th.BodyCursor[b.ID]; asked {
		t.Error("BodyCursor marker should be cleared once the ask completes")
	}
}
