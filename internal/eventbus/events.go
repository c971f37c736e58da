// Package eventbus routes external and internal events (key, click,
// message, scene-start, clone-start) to the scripts whose first block
// matches, per §4.4, and optionally mirrors every dispatch to an
// external WebSocket observer for debugging/HUD tooling.
package eventbus

import (
	"fmt"
	"time"
)

// EventType identifies which first-block opcode an event targets.
type EventType string

const (
	EventStartClicked EventType = "when_run_button_click"
	EventKeyPressed    EventType = "when_some_key_pressed"
	EventObjectClicked EventType = "mouse_clicked"
	EventObjectReleased EventType = "mouse_click_cancled"
	EventMessageCast   EventType = "when_message_cast"
	EventSceneStart    EventType = "when_scene_start"
	EventCloneStart    EventType = "when_clone_start"
)

// Event is one raised occurrence, either external (input) or internal
// (message_cast, scene transition, clone creation).
type Event struct {
	ID        string
	Timestamp time.Time
	Type      EventType

	// Discriminator payloads, only the relevant one(s) populated.
	KeyCode     string // EventKeyPressed
	ObjectID    string // EventObjectClicked/Released, EventCloneStart (the clone's id)
	MessageID   string // EventMessageCast
	SceneID     string // EventSceneStart
}

var eventSeq uint64

func next(t EventType) Event {
	eventSeq++
	return Event{ID: fmt.Sprintf("evt_%d", eventSeq), Timestamp: time.Now(), Type: t}
}

func NewStartClicked() Event {
	return next(EventStartClicked)
}

func NewKeyPressed(code string) Event {
	e := next(EventKeyPressed)
	e.KeyCode = code
	return e
}

func NewObjectClicked(objectID string) Event {
	e := next(EventObjectClicked)
	e.ObjectID = objectID
	return e
}

func NewMessageCast(messageID string) Event {
	e := next(EventMessageCast)
	e.MessageID = messageID
	return e
}

func NewSceneStart(sceneID string) Event {
	e := next(EventSceneStart)
	e.SceneID = sceneID
	return e
}

func NewCloneStart(objectID string) Event {
	e := next(EventCloneStart)
	e.ObjectID = objectID
	return e
}
