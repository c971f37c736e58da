package interp

import (
	"testing"

	"github.com/entryrt/engine/internal/eval"
	"github.com/entryrt/engine/internal/logging"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/registry"
	"github.com/entryrt/engine/internal/stageio"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/varstore"
)

type spyAudio struct {
	playedFrom, playedTo float64
	playedSound          string
	stoppedOwner         string
	stoppedAll           bool
}

func (s *spyAudio) Play(owner, soundID string, from, to float64) error {
	s.playedSound, s.playedFrom, s.playedTo = soundID, from, to
	return nil
}
func (*spyAudio) PlayBGM(string) error { return nil }
func (*spyAudio) StopBGM()             {}
func (s *spyAudio) StopAll()           { s.stoppedAll = true }
func (s *spyAudio) StopOwner(owner string) { s.stoppedOwner = owner }
func (*spyAudio) SetVolume(float64)        {}
func (*spyAudio) SetSpeed(float64)         {}
func (*spyAudio) IsPlaying(string, string) bool { return false }

func testInterpWithAudio(t *testing.T) (*Interp, *spyAudio) {
	t.Helper()
	reg := registry.New()
	reg.LoadProject(&model.Project{Objects: []*model.ObjectDef{
		{ID: "a", Name: "A", Scene: "s1", ObjectType: model.ObjectSprite,
			Entity: model.EntityData{ScaleX: 1, ScaleY: 1, Width: 10, Height: 10, Visible: true}},
	}})
	audio := &spyAudio{}
	vars := varstore.New(nil)
	env := eval.NewEnv(reg, vars, &fakeClock{}, stageio.NullInput{}, audio, logging.New(logging.Config{MinLevel: logging.LevelError}), 480, 270)
	return New(env, noHost{}, 60), audio
}

// TestPlaySoundFromToPassesThroughWithoutReversal locks in the
// existing (documented) resolution that from/to are never reordered
// or special-cased at the interpreter layer, even when to < from.
func TestPlaySoundFromToPassesThroughWithoutReversal(t *testing.T) {
	ip, audio := testInterpWithAudio(t)
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpPlaySoundFromTo, Params: []*model.Param{
		{Literal: "snd1"}, {Literal: 5.0}, {Literal: 1.0},
	}}
	handlePlaySoundFromTo(ip, "a", th, b)
	if audio.playedFrom != 5 || audio.playedTo != 1 {
		t.Errorf("from/to = %v/%v, want passed through unchanged (5/1)", audio.playedFrom, audio.playedTo)
	}
}

func TestPlaySoundAndWaitSuspendsThenCompletesOnResume(t *testing.T) {
	ip, _ := testInterpWithAudio(t)
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpPlaySoundAndWait, Params: []*model.Param{{Literal: "snd1"}}}

	res := handlePlaySoundAndWait(ip, "a", th, b)
	if res.Outcome != Suspended {
		t.Fatalf("first call should suspend on SoundFinish, got %v", res.Outcome)
	}
	if th.WaitType != thread.SoundFinish || th.WaitSoundID != "snd1" {
		t.Errorf("wait state = %+v, want SoundFinish on snd1", th)
	}

	res = handlePlaySoundAndWait(ip, "a", th, b)
	if res.Outcome != Completed {
		t.Fatalf("second call (resume) should complete, got %v", res.Outcome)
	}
}

func TestSoundVolumeSetAndChangeClampToUnitRange(t *testing.T) {
	ip, _ := testInterpWithAudio(t)
	th := thread.New(1, 1, "s1", "a", nil)

	handleSoundVolumeSet(ip, "a", th, &model.Block{ID: "b1", Opcode: OpSoundVolumeSet, Params: []*model.Param{{Literal: 200.0}}})
	if got := ip.Env.SoundVolume(); got != 1 {
		t.Errorf("SoundVolume = %v, want clamped to 1", got)
	}

	handleSoundVolumeSet(ip, "a", th, &model.Block{ID: "b2", Opcode: OpSoundVolumeSet, Params: []*model.Param{{Literal: 50.0}}})
	handleSoundVolumeChange(ip, "a", th, &model.Block{ID: "b3", Opcode: OpSoundVolumeChange, Params: []*model.Param{{Literal: -200.0}}})
	if got := ip.Env.SoundVolume(); got != 0 {
		t.Errorf("SoundVolume = %v, want clamped to 0", got)
	}
}

func TestSoundSilentAllThisOnlyStopsOwnerOnly(t *testing.T) {
	ip, audio := testInterpWithAudio(t)
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpSoundSilentAll, Params: []*model.Param{{Literal: "thisOnly"}}}
	handleSoundSilentAll(ip, "a", th, b)
	if audio.stoppedOwner != "a" {
		t.Errorf("StopOwner called with %q, want a", audio.stoppedOwner)
	}
	if audio.stoppedAll {
		t.Error("thisOnly should not call StopAll")
	}
}

func TestSoundSilentAllOtherObjectsApproximatesWithStopAll(t *testing.T) {
	ip, audio := testInterpWithAudio(t)
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpSoundSilentAll, Params: []*model.Param{{Literal: "other_objects"}}}
	handleSoundSilentAll(ip, "a", th, b)
	if !audio.stoppedAll {
		t.Error("other_objects silences via StopAll, since the backend has no negated stop-all-but")
	}
}
