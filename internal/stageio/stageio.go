// Package stageio defines the external collaborators named in §6:
// renderer, audio backend, input source, and clock. The core only
// consumes these; their implementations (window/compositor, decoders,
// HUD) are out of scope per §1.
package stageio

import "time"

// Renderer is consumed read-only by the (external) compositor loop;
// the core itself never calls it.
type Renderer interface {
	GetTextureSize(handle string) (w, h float64, ok bool)
	DrawTextureRotated(handle string, dstX, dstY, dstW, dstH, angleDeg, centerX, centerY float64, flipX, flipY bool)
	DrawText(font string, text string, color string, dstX, dstY, dstW, dstH float64)
	Present()
}

// AudioPlayer is the sound backend: owner+soundId keyed playback with
// end-of-stream reporting for *_and_wait suspensions.
type AudioPlayer interface {
	Play(ownerID, soundID string, fromSec, toSec float64) error
	PlayBGM(soundID string) error
	StopBGM()
	StopAll()
	StopOwner(ownerID string)
	SetVolume(v float64) // 0..1
	SetSpeed(v float64)  // 0.5..2.0
	IsPlaying(ownerID, soundID string) bool
}

// InputSource reports external input sampled once per tick.
type InputSource interface {
	MouseStagePos() (x, y float64, onStage bool)
	StageClicked() bool
	ClickedObjectID() (id string, ok bool)
	KeyPressed(canonicalName string) bool
	PendingTextSubmit() (text string, ok bool) // for ask_and_wait
}

// Clock supplies wall-clock time; abstracted so tests can control it.
type Clock interface {
	NowMs() int64
}

// SystemClock is the real-time Clock implementation.
type SystemClock struct{ epoch time.Time }

func NewSystemClock() *SystemClock { return &SystemClock{epoch: time.Now()} }

func (c *SystemClock) NowMs() int64 { return time.Since(c.epoch).Milliseconds() }

// NullRenderer/NullAudio/NullInput below let the engine run headless;
// `entryrt run` wires NullInput and NullAudio, and the tests use all three.

type NullRenderer struct{}

func (NullRenderer) GetTextureSize(string) (float64, float64, bool) { return 0, 0, false }
func (NullRenderer) DrawTextureRotated(string, float64, float64, float64, float64, float64, float64, float64, bool, bool) {
}
func (NullRenderer) DrawText(string, string, string, float64, float64, float64, float64) {}
func (NullRenderer) Present()                                                            {}

type NullAudio struct{}

func (NullAudio) Play(string, string, float64, float64) error { return nil }
func (NullAudio) PlayBGM(string) error                        { return nil }
func (NullAudio) StopBGM()                                    {}
func (NullAudio) StopAll()                                    {}
func (NullAudio) StopOwner(string)                            {}
func (NullAudio) SetVolume(float64)                           {}
func (NullAudio) SetSpeed(float64)                            {}
func (NullAudio) IsPlaying(string, string) bool               { return false }

type NullInput struct{}

func (NullInput) MouseStagePos() (float64, float64, bool)    { return 0, 0, false }
func (NullInput) StageClicked() bool                         { return false }
func (NullInput) ClickedObjectID() (string, bool)             { return "", false }
func (NullInput) KeyPressed(string) bool                      { return false }
func (NullInput) PendingTextSubmit() (string, bool)           { return "", false }
