// Package thread defines ScriptThreadState, the per-script-invocation
// execution context owned by exactly one Entity.
package thread

import (
	"math/rand"

	"github.com/entryrt/engine/internal/model"
)

// WaitKind enumerates the only suspension points the interpreter
// recognizes, per §5.
type WaitKind int

const (
	NotWaiting WaitKind = iota
	ExplicitWaitSecond
	BlockInternal
	SoundFinish
	TextInput
)

// ID uniquely identifies one thread-state, assigned at dispatch time.
type ID uint64

// State is the mutable execution context of one running script.
type State struct {
	ID         ID
	ObjectID   string
	Script     *model.Script
	Waiting             bool
	WaitType            WaitKind
	WaitEndMs           int64
	WaitingBlockID      string
	ResumeBlockIndex    int
	LoopCounters        map[string]int
	BreakLoopRequested  bool
	ContinueLoopRequested bool
	TerminateRequested  bool
	SceneAtDispatch     string
	Sequence            uint64 // monotonic dispatch order, for tick ordering

	// BodyCursor persists, per compound block id, the index within that
	// block's active statement body to resume at after a nested
	// suspension — this is what lets a suspend buried inside nested
	// if/repeat blocks resume at the exact right statement instead of
	// re-running the whole nesting from its start. IfElseBranch
	// remembers which of if_else's two bodies was taken, since the
	// condition is evaluated once, not on every resume.
	BodyCursor   map[string]int
	IfElseBranch map[string]int
	// LoopTotal memoizes repeat_basic's iteration-count param, evaluated
	// once per loop invocation rather than once per resumed tick.
	LoopTotal map[string]int

	// Sound-finish wait target, checked against the audio backend.
	WaitSoundOwner string
	WaitSoundID    string

	// Rng is this thread's private random source for calc_rand, per
	// §4.1's "each executor thread uses a thread-local RNG".
	Rng *rand.Rand
}

func New(id ID, seq uint64, scene, objectID string, script *model.Script) *State {
	return &State{
		ID:              id,
		ObjectID:        objectID,
		Script:          script,
		LoopCounters:    make(map[string]int),
		BodyCursor:      make(map[string]int),
		IfElseBranch:    make(map[string]int),
		LoopTotal:       make(map[string]int),
		SceneAtDispatch: scene,
		Sequence:        seq,
	}
}

// SetWait records a suspension on the calling thread, per the
// invariant in §3: waiting=true implies exactly one wait kind and a
// non-null waitingBlockId.
func (s *State) SetWait(kind WaitKind, blockID string, endMs int64) {
	s.Waiting = true
	s.WaitType = kind
	s.WaitingBlockID = blockID
	s.WaitEndMs = endMs
}

// ClearWait ends the suspension; the caller is responsible for
// deciding whether to re-run the waiting block or advance past it.
func (s *State) ClearWait() {
	s.Waiting = false
	s.WaitType = NotWaiting
	s.WaitingBlockID = ""
	s.WaitEndMs = 0
	s.WaitSoundOwner = ""
	s.WaitSoundID = ""
}

// ConsumeBreak reports and clears a pending loop-break request.
func (s *State) ConsumeBreak() bool {
	v := s.BreakLoopRequested
	s.BreakLoopRequested = false
	return v
}

// ConsumeContinue reports and clears a pending loop-continue request.
func (s *State) ConsumeContinue() bool {
	v := s.ContinueLoopRequested
	s.ContinueLoopRequested = false
	return v
}
