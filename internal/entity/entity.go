// Package entity owns the mutable per-object live state: transform,
// visuals, pens, dialog, and per-script thread states, under a single
// serializing lock per entity as directed by §5 and §9.
package entity

import (
	"sync"

	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

// RotationMethod controls how direction changes affect the rendered
// sprite rotation.
type RotationMethod string

const (
	RotateNone       RotationMethod = "none"
	RotateFree       RotationMethod = "free"
	RotateVertical   RotationMethod = "vertical"
	RotateHorizontal RotationMethod = "horizontal"
)

// CollisionSide is the wall last bounced off of, used as one-frame
// hysteresis per §3/§4.1.
type CollisionSide int

const (
	SideNone CollisionSide = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// DialogType distinguishes speech balloons from thought balloons.
type DialogType string

const (
	DialogSpeak DialogType = "speak"
	DialogThink DialogType = "think"
)

// Dialog is the entity's current speech/thought balloon.
type Dialog struct {
	Active      bool
	Text        string
	Type        DialogType
	StartMs     int64
	DurationMs  int64 // 0 means "until cleared explicitly"
}

// Pen is one of an entity's two independent pen trails.
type Pen struct {
	IsDown  bool
	LastX   float64
	LastY   float64
	HasLast bool
	Color   string // "#RRGGBB"
	Stopped bool   // suppresses line emission but not position tracking
}

// TimedMove tracks an in-progress move_xy_time / locate_xy_time /
// locate_object_time block across ticks.
type TimedMove struct {
	Active          bool
	TotalFrames     int
	RemainingFrames int
	TargetX         float64
	TargetY         float64
	FollowTargetID  string // set for locate_object_time; re-read target pos each tick
}

// TimedRotation tracks an in-progress rotate_by_time block.
type TimedRotation struct {
	Active          bool
	TotalFrames     int
	RemainingFrames int
	TargetDeg       float64
	Absolute        bool // true for *_absolute variants
	AffectsRotation bool // true if rotating `rotation`, false for `direction`
}

// Effects holds the three visual effect channels.
type Effects struct {
	Hue        float64
	Brightness float64
	Alpha      float64 // 0..1, 1 = fully opaque
}

func DefaultEffects() Effects { return Effects{Alpha: 1} }

// Entity is the live, mutable record for one stage object or clone.
type Entity struct {
	mu sync.Mutex

	ID         string
	OriginalID string // == ID for originals, the original's id for clones
	IsClone    bool
	Name       string
	Scene      string
	ObjectType model.ObjectType

	Def *model.ObjectDef // shared, read-only ObjectInfo

	X, Y                 float64
	RegX, RegY           float64
	ScaleX, ScaleY       float64
	Rotation             float64
	Direction            float64
	Width, Height        float64
	Visible              bool
	RotationMethod       RotationMethod
	Effects              Effects
	LastCollisionSide    CollisionSide

	CostumeIndex int

	Brush Pen
	Paint Pen

	Dialog Dialog

	TimedMoveState     TimedMove
	TimedRotationState TimedRotation

	// TextBox-only mutable fields.
	Text      string
	FontColor string
	BGColor   string

	threadStates map[thread.ID]*thread.State
}

// New builds the live Entity from its authored ObjectDef.
func New(id string, def *model.ObjectDef) *Entity {
	e := &Entity{
		ID:             id,
		OriginalID:     id,
		Name:           def.Name,
		Scene:          def.Scene,
		ObjectType:     def.ObjectType,
		Def:            def,
		X:              def.Entity.X,
		Y:              def.Entity.Y,
		RegX:           def.Entity.RegX,
		RegY:           def.Entity.RegY,
		ScaleX:         nz(def.Entity.ScaleX, 1),
		ScaleY:         nz(def.Entity.ScaleY, 1),
		Rotation:       def.Entity.Rotation,
		Direction:      def.Entity.Direction,
		Width:          def.Entity.Width,
		Height:         def.Entity.Height,
		Visible:        def.Entity.Visible,
		RotationMethod: RotateFree,
		Effects:        DefaultEffects(),
		Text:           def.Entity.Text,
		FontColor:      def.Entity.Colour,
		threadStates:   make(map[thread.ID]*thread.State),
	}
	return e
}

func nz(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// Lock/Unlock expose the entity's serializing lock to callers (the
// interpreter and renderer snapshot path) that must hold it across
// several field reads/writes.
func (e *Entity) Lock()   { e.mu.Lock() }
func (e *Entity) Unlock() { e.mu.Unlock() }

// Clone produces a fresh Entity sharing Def by reference (shallow)
// but with its own deep-copied live state, per §4.5.
func (e *Entity) Clone(newID string) *Entity {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := &Entity{
		ID:                 newID,
		OriginalID:         e.OriginalID,
		IsClone:            true,
		Name:               e.Name,
		Scene:              e.Scene,
		ObjectType:         e.ObjectType,
		Def:                e.Def,
		X:                  e.X,
		Y:                  e.Y,
		RegX:               e.RegX,
		RegY:               e.RegY,
		ScaleX:             e.ScaleX,
		ScaleY:             e.ScaleY,
		Rotation:           e.Rotation,
		Direction:          e.Direction,
		Width:              e.Width,
		Height:             e.Height,
		Visible:            e.Visible,
		RotationMethod:     e.RotationMethod,
		Effects:            e.Effects,
		CostumeIndex:       e.CostumeIndex,
		Brush:              e.Brush,
		Paint:              e.Paint,
		Text:               e.Text,
		FontColor:          e.FontColor,
		BGColor:            e.BGColor,
		threadStates:       make(map[thread.ID]*thread.State),
	}
	return c
}

// Threads returns the live thread-state map. Callers must hold the
// entity lock.
func (e *Entity) Threads() map[thread.ID]*thread.State { return e.threadStates }

func (e *Entity) AddThread(s *thread.State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.threadStates[s.ID] = s
}

func (e *Entity) RemoveThread(id thread.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.threadStates, id)
}

// TerminateAll marks every thread-state (optionally excluding one id)
// for teardown, used by stop_object and scene transitions.
func (e *Entity) TerminateAll(except thread.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, st := range e.threadStates {
		if id == except {
			continue
		}
		st.TerminateRequested = true
	}
}

// UpdateDialog clears a timed dialog whose duration elapsed, per
// §4.2.2's updateDialog(nowMs).
func (e *Entity) UpdateDialog(nowMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Dialog.Active && e.Dialog.DurationMs > 0 && nowMs >= e.Dialog.StartMs+e.Dialog.DurationMs {
		e.Dialog = Dialog{}
	}
}

// HalfExtents returns the entity's scaled half-width/half-height for
// bounding-box tests (wall bounce, touch-object, touch-mouse).
func (e *Entity) HalfExtents() (hw, hh float64) {
	hw = e.Width * absf(e.ScaleX) / 2
	hh = e.Height * absf(e.ScaleY) / 2
	return
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
