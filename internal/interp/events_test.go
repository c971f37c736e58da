package interp

import (
	"testing"

	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

type recordingHost struct {
	noHost
	castMessageID string
	startSceneID  string
	nextSceneDir  string
}

func (h *recordingHost) CastMessage(id string) { h.castMessageID = id }
func (h *recordingHost) StartScene(id string)  { h.startSceneID = id }
func (h *recordingHost) NextScene(dir string)  { h.nextSceneDir = dir }

func TestHandleMessageCastDelegatesToHost(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	host := &recordingHost{}
	ip.Host = host
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpMessageCast, Params: []*model.Param{{Literal: "go"}}}
	handleMessageCast(ip, "a", th, b)
	if host.castMessageID != "go" {
		t.Errorf("CastMessage got %q, want go", host.castMessageID)
	}
}

func TestHandleStartSceneDelegatesAndTerminatesCaller(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	host := &recordingHost{}
	ip.Host = host
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpStartScene, Params: []*model.Param{{Literal: "s2"}}}
	handleStartScene(ip, "a", th, b)
	if host.startSceneID != "s2" {
		t.Errorf("StartScene got %q, want s2", host.startSceneID)
	}
	if !th.TerminateRequested {
		t.Error("start_scene must terminate the calling thread's script, per a scene switch ending every local script")
	}
}

func TestHandleStartNeighborSceneDelegatesAndTerminatesCaller(t *testing.T) {
	ip, _ := testInterp(t, 480, 270)
	host := &recordingHost{}
	ip.Host = host
	th := thread.New(1, 1, "s1", "a", nil)
	b := &model.Block{ID: "b1", Opcode: OpStartNeighborScene, Params: []*model.Param{{Literal: "next"}}}
	handleStartNeighborScene(ip, "a", th, b)
	if host.nextSceneDir != "next" {
		t.Errorf("NextScene got %q, want next", host.nextSceneDir)
	}
	if !th.TerminateRequested {
		t.Error("start_neighbor_scene must terminate the calling thread's script too")
	}
}
