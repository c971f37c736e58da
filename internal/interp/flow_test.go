package interp

import (
	"testing"

	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

func boolBlock(id, opcode string, v bool) *model.Block {
	return &model.Block{ID: id, Opcode: opcode, Params: []*model.Param{{Literal: v}}}
}

func TestRepeatBasicRunsExactCountThenCleansUpState(t *testing.T) {
	ip, reg := testInterp(t, 480, 270)
	th := thread.New(1, 1, "s1", "a", nil)
	inner := numBlock("inc", OpMoveX, 1)
	b := numBlock("loop", OpRepeatBasic, 3)
	b.Statements = [][]*model.Block{{inner}}

	// The last of the 3 iterations completes the loop in the same
	// call that runs it (the post-increment total check fires before
	// a wait would be set), so only the first 2 calls suspend.
	for i := 0; i < 2; i++ {
		res := handleRepeatBasic(ip, "a", th, b)
		if res.Outcome != Suspended {
			t.Fatalf("iteration %d: expected Suspended (one-tick gate), got %v", i, res.Outcome)
		}
	}
	res := handleRepeatBasic(ip, "a", th, b)
	if res.Outcome != Completed {
		t.Fatalf("expected loop to complete on its 3rd iteration, got %v", res.Outcome)
	}
	e, _ := reg.Get("a")
	if e.X != 3 {
		t.Errorf("x = %v, want 3 after repeat_basic(3) incrementing by 1", e.X)
	}
	if _, has := th.LoopCounters[b.ID]; has {
		t.Error("loop counters must be cleaned up once the loop completes")
	}
}

func TestRepeatBasicNegativeCountFails(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	th := thread.New(1, 1, "s1", "a", nil)
	b := numBlock("loop", OpRepeatBasic, -1)
	b.Statements = [][]*model.Block{{}}
	res := handleRepeatBasic(ip, "a", th, b)
	if res.Outcome != Failed {
		t.Fatalf("expected Failed for a negative repeat count, got %v", res.Outcome)
	}
	if res.Err == nil || res.Err.Opcode != OpRepeatBasic {
		t.Errorf("expected a ScriptBlockExecutionError tagged with %s", OpRepeatBasic)
	}
}

func TestRepeatWhileTrueReevaluatesOnlyBetweenPasses(t *testing.T) {
	ip, reg := testInterp(t, 480, 270)
	th := thread.New(1, 1, "s1", "a", nil)

	// Condition literal true: each call is one full pass gated by the
	// scheduler's one-tick wait, exactly like repeat_inf, since the
	// body itself never suspends mid-pass.
	b := &model.Block{ID: "loop", Opcode: OpRepeatWhileTrue}
	b.Params = []*model.Param{{Literal: true}}
	inner := numBlock("inc", OpMoveX, 1)
	b.Statements = [][]*model.Block{{inner}}

	res := handleRepeatWhileTrue(ip, "a", th, b)
	if res.Outcome != Suspended {
		t.Fatalf("expected one-tick suspension after a completed pass, got %v", res.Outcome)
	}
	e, _ := reg.Get("a")
	if e.X != 1 {
		t.Errorf("x = %v, want 1 after one pass", e.X)
	}

	// A pass suspended mid-body resumes without re-checking the
	// condition, even though it has turned false in the meantime; the
	// false condition only ends the loop at the next pass boundary.
	th2 := thread.New(2, 2, "s1", "a", nil)
	w := &model.Block{ID: "loop2", Opcode: OpRepeatWhileTrue}
	w.Params = []*model.Param{{Literal: true}}
	w.Statements = [][]*model.Block{{numBlock("w", OpWaitSecond, 1), numBlock("inc2", OpMoveX, 1)}}
	if res := handleRepeatWhileTrue(ip, "a", th2, w); res.Outcome != Suspended {
		t.Fatalf("expected suspension inside the body's wait, got %v", res.Outcome)
	}
	w.Params[0].Literal = false
	handleRepeatWhileTrue(ip, "a", th2, w)
	if e.X != 2 {
		t.Errorf("x = %v, want 2: the resumed pass must finish despite the false condition", e.X)
	}
	if res := handleRepeatWhileTrue(ip, "a", th2, w); res.Outcome != Completed {
		t.Errorf("expected the false condition to end the loop between passes, got %v", res.Outcome)
	}
}

func TestRepeatWhileTrueFalseConditionSkipsBody(t *testing.T) {
	ip, reg := testInterp(t, 480, 270)
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "loop", Opcode: OpRepeatWhileTrue, Params: []*model.Param{{Literal: false}}}
	b.Statements = [][]*model.Block{{numBlock("inc", OpMoveX, 1)}}
	res := handleRepeatWhileTrue(ip, "a", th, b)
	if res.Outcome != Completed {
		t.Fatalf("false condition should complete immediately, got %v", res.Outcome)
	}
	e, _ := reg.Get("a")
	if e.X != 0 {
		t.Errorf("x = %v, want 0 (body must not run)", e.X)
	}
}

func TestIfElseEvaluatesConditionOnceAndPersistsBranch(t *testing.T) {
	ip, reg := testInterp(t, 480, 270)
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "ie", Opcode: OpIfElse, Params: []*model.Param{{Literal: true}}}
	b.Statements = [][]*model.Block{
		{numBlock("then", OpMoveX, 10)},
		{numBlock("else", OpMoveX, -10)},
	}
	handleIfElse(ip, "a", th, b)
	e, _ := reg.Get("a")
	if e.X != 10 {
		t.Errorf("x = %v, want 10 (then-branch taken)", e.X)
	}
	if _, has := th.IfElseBranch[b.ID]; has {
		t.Error("branch memo should be cleared once the chosen body completes")
	}
}

func TestWaitUntilTrueSuspendsUntilConditionHolds(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	th := thread.New(1, 1, "s1", "a", nil)
	falseBlock := boolBlock("b1", OpWaitUntilTrue, false)
	res := handleWaitUntilTrue(ip, "a", th, falseBlock)
	if res.Outcome != Suspended {
		t.Fatalf("expected Suspended while condition is false, got %v", res.Outcome)
	}
	trueBlock := boolBlock("b1", OpWaitUntilTrue, true)
	res = handleWaitUntilTrue(ip, "a", th, trueBlock)
	if res.Outcome != Completed {
		t.Fatalf("expected Completed once condition is true, got %v", res.Outcome)
	}
}

func TestStopObjectThisObjectTerminatesCallingThreadToo(t *testing.T) {
	ip, reg := testInterp(t, 480, 270)
	e, _ := reg.Get("a")
	caller := thread.New(1, 1, "s1", "a", nil)
	other := thread.New(2, 2, "s1", "a", nil)
	e.AddThread(caller)
	e.AddThread(other)

	b := &model.Block{ID: "b1", Opcode: OpStopObject, Params: []*model.Param{{Literal: "thisObject"}}}
	handleStopObject(ip, "a", caller, b)

	if !caller.TerminateRequested {
		t.Error("stop_object(thisObject) must terminate the calling thread too")
	}
	if !other.TerminateRequested {
		t.Error("stop_object(thisObject) must terminate every thread on the object")
	}
}

func TestStopObjectOtherThreadsLeavesCallerRunning(t *testing.T) {
	ip, reg := testInterp(t, 480, 270)
	e, _ := reg.Get("a")
	caller := thread.New(1, 1, "s1", "a", nil)
	other := thread.New(2, 2, "s1", "a", nil)
	e.AddThread(caller)
	e.AddThread(other)

	b := &model.Block{ID: "b1", Opcode: OpStopObject, Params: []*model.Param{{Literal: "otherThreadsOfThisObject"}}}
	handleStopObject(ip, "a", caller, b)

	if caller.TerminateRequested {
		t.Error("stop_object(otherThreadsOfThisObject) must not terminate the calling thread")
	}
	if !other.TerminateRequested {
		t.Error("stop_object(otherThreadsOfThisObject) must terminate the object's other threads")
	}
}

func TestCreateCloneDelegatesToHostWithResolvedSelfTarget(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	th := thread.New(1, 1, "s1", "a", nil)
	spy := &spyHost{}
	ip.Host = spy
	b := &model.Block{ID: "b1", Opcode: OpCreateClone, Params: []*model.Param{{Literal: "self"}}}
	handleCreateClone(ip, "a", th, b)
	if spy.cloneTarget != "a" {
		t.Errorf("create_clone(self) should resolve to the calling object, got %q", spy.cloneTarget)
	}
}

type spyHost struct {
	noHost
	cloneTarget string
}

func (s *spyHost) CreateClone(target, caller string) (string, error) {
	s.cloneTarget = target
	return "clone-1", nil
}
