package eventbus

import (
	"github.com/entryrt/engine/internal/keys"
	"github.com/entryrt/engine/internal/model"
)

// ScriptRef names one top-level script and the object it belongs to.
type ScriptRef struct {
	ObjectID string
	Script   *model.Script
}

// Index is the load-time-built mapping from first-block opcode (and
// its discriminating param) to the scripts that should be dispatched,
// per §4.4.
type Index struct {
	onStart        []ScriptRef
	byKey          map[string][]ScriptRef
	byObjectClick  map[string][]ScriptRef
	byObjectRelease map[string][]ScriptRef
	byMessage      map[string][]ScriptRef
	byScene        map[string][]ScriptRef
	byCloneOrigin  map[string][]ScriptRef
}

func NewIndex() *Index {
	return &Index{
		byKey:           make(map[string][]ScriptRef),
		byObjectClick:   make(map[string][]ScriptRef),
		byObjectRelease: make(map[string][]ScriptRef),
		byMessage:       make(map[string][]ScriptRef),
		byScene:         make(map[string][]ScriptRef),
		byCloneOrigin:   make(map[string][]ScriptRef),
	}
}

// Build indexes every object's scripts by their first block's opcode.
func Build(p *model.Project) *Index {
	idx := NewIndex()
	for _, obj := range p.Objects {
		for _, script := range obj.Scripts {
			if len(script.Blocks) == 0 {
				continue
			}
			head := script.Blocks[0]
			ref := ScriptRef{ObjectID: obj.ID, Script: script}
			switch EventType(head.Opcode) {
			case EventStartClicked:
				idx.onStart = append(idx.onStart, ref)
			case EventKeyPressed:
				if p0 := head.Param(0); p0 != nil && !p0.IsBlock() {
					code := keys.Resolve(literalString(p0.Literal))
					idx.byKey[code] = append(idx.byKey[code], ref)
				}
			case EventObjectClicked:
				idx.byObjectClick[obj.ID] = append(idx.byObjectClick[obj.ID], ref)
			case EventObjectReleased:
				idx.byObjectRelease[obj.ID] = append(idx.byObjectRelease[obj.ID], ref)
			case EventMessageCast:
				if p0 := head.Param(0); p0 != nil && !p0.IsBlock() {
					id := literalString(p0.Literal)
					idx.byMessage[id] = append(idx.byMessage[id], ref)
				}
			case EventSceneStart:
				// Dispatched per-scene membership, not by a param; the
				// scene is the object's authored scene, read once here
				// when the index is built.
				idx.byScene[obj.Scene] = append(idx.byScene[obj.Scene], ref)
			case EventCloneStart:
				idx.byCloneOrigin[obj.ID] = append(idx.byCloneOrigin[obj.ID], ref)
			}
		}
	}
	return idx
}

func literalString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatFloat(t)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return itoa(int64(f))
	}
	return ""
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Keys returns every scancode with at least one when_some_key_pressed
// script registered, for the scheduler's per-tick edge detection.
func (idx *Index) Keys() []string {
	out := make([]string, 0, len(idx.byKey))
	for k := range idx.byKey {
		out = append(out, k)
	}
	return out
}

func (idx *Index) ByObjectRelease(id string) []ScriptRef { return idx.byObjectRelease[id] }

func (idx *Index) OnStart() []ScriptRef                { return idx.onStart }
func (idx *Index) ByKey(code string) []ScriptRef       { return idx.byKey[code] }
func (idx *Index) ByObjectClick(id string) []ScriptRef { return idx.byObjectClick[id] }
func (idx *Index) ByMessage(id string) []ScriptRef     { return idx.byMessage[id] }
func (idx *Index) ByScene(scene string) []ScriptRef    { return idx.byScene[scene] }
func (idx *Index) ByCloneOrigin(id string) []ScriptRef { return idx.byCloneOrigin[id] }
