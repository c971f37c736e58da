// Package eval implements the pure recursive reporter evaluator of
// §4.1: eval(env, objectId, paramField, threadId) -> Value.
package eval

import (
	"sync"
	"time"

	"github.com/entryrt/engine/internal/logging"
	"github.com/entryrt/engine/internal/registry"
	"github.com/entryrt/engine/internal/stageio"
	"github.com/entryrt/engine/internal/varstore"
)

// Env bundles the engine state the evaluator and handlers reach. It
// holds no entity lock: reporters that read an entity's fields lock
// that entity for the read, and statement handlers lock their own
// entity per operation. The global sound settings are guarded by
// Env's own mutex.
type Env struct {
	Registry *registry.Registry
	Vars     *varstore.Store
	Clock    stageio.Clock
	Input    stageio.InputSource
	Audio    stageio.AudioPlayer
	Log      *logging.Logger

	StageW, StageH float64

	startedAt time.Time

	soundMu    sync.Mutex
	soundVol   float64 // [0,1], global across all owners
	soundSpeed float64 // [0.5,2.0]
}

func NewEnv(reg *registry.Registry, vars *varstore.Store, clock stageio.Clock, input stageio.InputSource, audio stageio.AudioPlayer, log *logging.Logger, stageW, stageH float64) *Env {
	return &Env{
		Registry:   reg,
		Vars:       vars,
		Clock:      clock,
		Input:      input,
		Audio:      audio,
		Log:        log,
		StageW:     stageW,
		StageH:     stageH,
		startedAt:  time.Now(),
		soundVol:   1,
		soundSpeed: 1,
	}
}

// SoundVolume/SoundSpeed are the single global playback knobs §4.2.3
// describes; SetSoundVolume/SetSoundSpeed clamp to their documented
// ranges and push the new value to the audio backend.
func (e *Env) SoundVolume() float64 {
	e.soundMu.Lock()
	defer e.soundMu.Unlock()
	return e.soundVol
}

func (e *Env) SoundSpeed() float64 {
	e.soundMu.Lock()
	defer e.soundMu.Unlock()
	return e.soundSpeed
}

func (e *Env) SetSoundVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	e.soundMu.Lock()
	e.soundVol = v
	e.soundMu.Unlock()
	if e.Audio != nil {
		e.Audio.SetVolume(v)
	}
}

func (e *Env) SetSoundSpeed(v float64) {
	if v < 0.5 {
		v = 0.5
	}
	if v > 2.0 {
		v = 2.0
	}
	e.soundMu.Lock()
	e.soundSpeed = v
	e.soundMu.Unlock()
	if e.Audio != nil {
		e.Audio.SetSpeed(v)
	}
}

// TimerSeconds implements the project timer reporter: elapsed
// wall-clock seconds since the engine started (reset by restart_project
// via ResetTimer).
func (e *Env) TimerSeconds() float64 {
	return time.Since(e.startedAt).Seconds()
}

func (e *Env) ResetTimer() { e.startedAt = time.Now() }

func (e *Env) warn(msg string, fields map[string]any) {
	if e.Log != nil {
		e.Log.Warn(msg, fields)
	}
}
