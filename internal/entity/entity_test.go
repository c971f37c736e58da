package entity

import (
	"testing"

	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

func newTestDef(id string) *model.ObjectDef {
	return &model.ObjectDef{
		ID:         id,
		Name:       id,
		Scene:      "s1",
		ObjectType: model.ObjectSprite,
		Entity: model.EntityData{
			X: 1, Y: 2, ScaleX: 1, ScaleY: 1,
			Width: 10, Height: 20, Visible: true,
		},
	}
}

func TestNewAppliesDefaultScaleWhenZero(t *testing.T) {
	def := newTestDef("a")
	def.Entity.ScaleX = 0
	def.Entity.ScaleY = 0
	e := New("a", def)
	if e.ScaleX != 1 || e.ScaleY != 1 {
		t.Errorf("ScaleX/Y = %v/%v, want 1/1 default", e.ScaleX, e.ScaleY)
	}
}

func TestCloneDeepCopiesLiveStateSharesDef(t *testing.T) {
	def := newTestDef("orig")
	e := New("orig", def)
	e.X, e.Y = 5, 6
	th := thread.New(1, 1, "s1", "orig", nil)
	e.AddThread(th)

	c := e.Clone("orig-clone-1")
	if c.ID != "orig-clone-1" || c.OriginalID != "orig" || !c.IsClone {
		t.Fatalf("clone identity wrong: %+v", c)
	}
	if c.Def != e.Def {
		t.Error("clone should share Def by reference")
	}
	if c.X != 5 || c.Y != 6 {
		t.Errorf("clone should copy live position, got %v,%v", c.X, c.Y)
	}
	if len(c.Threads()) != 0 {
		t.Error("clone must start with no threads of its own")
	}

	c.X = 100
	if e.X == 100 {
		t.Error("mutating the clone's position must not affect the original")
	}
}

func TestTerminateAllExceptsOneThread(t *testing.T) {
	e := New("a", newTestDef("a"))
	t1 := thread.New(1, 1, "s1", "a", nil)
	t2 := thread.New(2, 2, "s1", "a", nil)
	e.AddThread(t1)
	e.AddThread(t2)

	e.TerminateAll(1)
	if t1.TerminateRequested {
		t.Error("excepted thread should not be terminated")
	}
	if !t2.TerminateRequested {
		t.Error("non-excepted thread should be marked for termination")
	}
}

func TestUpdateDialogClearsExpiredTimedDialog(t *testing.T) {
	e := New("a", newTestDef("a"))
	e.Dialog = Dialog{Active: true, Text: "hi", StartMs: 1000, DurationMs: 500}

	e.UpdateDialog(1400)
	if !e.Dialog.Active {
		t.Fatal("dialog should still be active before its duration elapses")
	}

	e.UpdateDialog(1500)
	if e.Dialog.Active {
		t.Error("dialog should clear once nowMs reaches start+duration")
	}
}

func TestUpdateDialogLeavesUntimedDialogAlone(t *testing.T) {
	e := New("a", newTestDef("a"))
	e.Dialog = Dialog{Active: true, Text: "forever", StartMs: 0, DurationMs: 0}
	e.UpdateDialog(1_000_000)
	if !e.Dialog.Active {
		t.Error("a zero-duration dialog only clears explicitly, never by timeout")
	}
}

func TestHalfExtentsScalesByAbsoluteScale(t *testing.T) {
	def := newTestDef("a")
	def.Entity.Width = 10
	def.Entity.Height = 20
	e := New("a", def)
	e.ScaleX = -2
	e.ScaleY = 0.5
	hw, hh := e.HalfExtents()
	if hw != 10 {
		t.Errorf("hw = %v, want 10 (negative scale uses absolute value)", hw)
	}
	if hh != 5 {
		t.Errorf("hh = %v, want 5", hh)
	}
}
