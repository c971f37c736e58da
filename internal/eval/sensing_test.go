package eval

import (
	"testing"

	"github.com/entryrt/engine/internal/logging"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/registry"
	"github.com/entryrt/engine/internal/stageio"
	"github.com/entryrt/engine/internal/varstore"
)

type fakeSensingClock struct{}

func (fakeSensingClock) NowMs() int64 { return 0 }

type fakeInput struct {
	mx, my  float64
	onStage bool
	pressed map[string]bool
}

func (f fakeInput) MouseStagePos() (float64, float64, bool)  { return f.mx, f.my, f.onStage }
func (fakeInput) StageClicked() bool                          { return false }
func (fakeInput) ClickedObjectID() (string, bool)              { return "", false }
func (f fakeInput) KeyPressed(name string) bool                { return f.pressed[name] }
func (fakeInput) PendingTextSubmit() (string, bool)            { return "", false }

func sensingEnv(t *testing.T, in stageio.InputSource, stageW, stageH float64) (*Env, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	reg.LoadProject(&model.Project{Objects: []*model.ObjectDef{
		{ID: "a", Name: "A", Scene: "s1", ObjectType: model.ObjectSprite,
			Entity: model.EntityData{ScaleX: 1, ScaleY: 1, Width: 10, Height: 10, Visible: true}},
		{ID: "b", Name: "B", Scene: "s1", ObjectType: model.ObjectSprite,
			Entity: model.EntityData{X: 100, Y: 100, ScaleX: 1, ScaleY: 1, Width: 10, Height: 10, Visible: true}},
	}})
	vars := varstore.New(nil)
	env := NewEnv(reg, vars, fakeSensingClock{}, in, stageio.NullAudio{}, logging.New(logging.Config{MinLevel: logging.LevelError}), stageW, stageH)
	return env, reg
}

func literalParamBlock(id, opcode string, lit any) *model.Block {
	return &model.Block{ID: id, Opcode: opcode, Params: []*model.Param{{Literal: lit}}}
}

func TestEvalIsPressSomeKeyResolvesAndQueriesInput(t *testing.T) {
	env, _ := sensingEnv(t, fakeInput{pressed: map[string]bool{"LEFT": true}}, 480, 270)
	b := literalParamBlock("b1", "is_press_some_key", "37") // JS keyCode for LEFT
	if got := evalIsPressSomeKey(env, "a", b, nil); !got.AsBool() {
		t.Error("is_press_some_key(37) should resolve to LEFT and report pressed")
	}
}

func TestEvalReachSomethingWall(t *testing.T) {
	env, reg := sensingEnv(t, fakeInput{}, 20, 20)
	e, _ := reg.Get("a")
	e.X = 5 // half-extent 5, stage half-width 10: touches right wall
	b := literalParamBlock("b1", "reach_something", "wall")
	if got := evalReachSomething(env, "a", b, nil); !got.AsBool() {
		t.Error("object pinned against the stage edge should report touching wall")
	}
}

func TestEvalReachSomethingMouse(t *testing.T) {
	env, _ := sensingEnv(t, fakeInput{mx: 0, my: 0, onStage: true}, 480, 270)
	b := literalParamBlock("b1", "reach_something", "mouse")
	if got := evalReachSomething(env, "a", b, nil); !got.AsBool() {
		t.Error("mouse at the object's own center should report touching")
	}
}

func TestEvalReachSomethingMouseOffStageIsFalse(t *testing.T) {
	env, _ := sensingEnv(t, fakeInput{onStage: false}, 480, 270)
	b := literalParamBlock("b1", "reach_something", "mouse")
	if got := evalReachSomething(env, "a", b, nil); got.AsBool() {
		t.Error("mouse off-stage should never report a touch")
	}
}

func TestEvalReachSomethingOtherObjectOverlap(t *testing.T) {
	env, reg := sensingEnv(t, fakeInput{}, 480, 270)
	other, _ := reg.Get("b")
	other.X, other.Y = 0, 0 // move onto object a
	b := literalParamBlock("b1", "reach_something", "b")
	if got := evalReachSomething(env, "a", b, nil); !got.AsBool() {
		t.Error("overlapping bounding boxes should report touching")
	}
}

func TestEvalReachSomethingUnknownTargetIsFalse(t *testing.T) {
	env, _ := sensingEnv(t, fakeInput{}, 480, 270)
	b := literalParamBlock("b1", "reach_something", "nope")
	if got := evalReachSomething(env, "a", b, nil); got.AsBool() {
		t.Error("an unresolvable target should report false, not panic or error")
	}
}
