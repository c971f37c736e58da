// Package registry implements the entity registry: creation, lookup,
// cloning, and deletion, plus per-scene membership and the global
// draw-order list used for Front/Forward/Backward/Back reordering.
package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/entryrt/engine/internal/entity"
	"github.com/entryrt/engine/internal/model"
)

// Registry owns the set of live entities. Operations take a handle
// (string id), never a pointer into another entity, per §9's
// "cyclic references become handles" guidance.
type Registry struct {
	mu sync.RWMutex

	entities map[string]*entity.Entity
	// drawOrder is the global z-order; index 0 draws first (furthest
	// back); the renderer is directed to draw it in reverse, so the
	// list's *end* is the UI's "front" per §4.2.2.
	drawOrder []string
	// sceneMembers indexes live entity ids by current scene.
	sceneMembers map[string][]string

	cloneSeq uint64
}

func New() *Registry {
	return &Registry{
		entities:     make(map[string]*entity.Entity),
		sceneMembers: make(map[string][]string),
	}
}

// LoadProject populates the registry from parsed ObjectDefs, one
// Entity per object, in file order (which becomes initial draw order).
func (r *Registry) LoadProject(p *model.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range p.Objects {
		e := entity.New(def.ID, def)
		r.entities[def.ID] = e
		r.drawOrder = append(r.drawOrder, def.ID)
		r.sceneMembers[def.Scene] = append(r.sceneMembers[def.Scene], def.ID)
	}
}

// Get returns the entity for id, or nil with ok=false.
func (r *Registry) Get(id string) (*entity.Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[id]
	return e, ok
}

// All returns a snapshot slice of every live entity id, in draw order.
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.drawOrder))
	copy(out, r.drawOrder)
	return out
}

// SceneMembers returns the live entity ids currently in scene id, in
// draw order among themselves.
func (r *Registry) SceneMembers(scene string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order := make(map[string]int, len(r.drawOrder))
	for i, id := range r.drawOrder {
		order[id] = i
	}
	ids := append([]string(nil), r.sceneMembers[scene]...)
	// stable sort by draw order
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && order[ids[j-1]] > order[ids[j]]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// DrawIndex returns the entity's position in the global draw-order
// list, used by the scheduler's (scene, draw-order, sequence) tick
// ordering contract in §4.3.
func (r *Registry) DrawIndex(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, v := range r.drawOrder {
		if v == id {
			return i
		}
	}
	return -1
}

// Reorder implements change_object_index: FRONT moves id to the end
// of the list (drawn last == visually in front), BACK to the start,
// FORWARD/BACKWARD swap with the immediate neighbour.
type ReorderKind string

const (
	Front    ReorderKind = "FRONT"
	Back     ReorderKind = "BACK"
	Forward  ReorderKind = "FORWARD"
	Backward ReorderKind = "BACKWARD"
)

func (r *Registry) Reorder(id string, kind ReorderKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, v := range r.drawOrder {
		if v == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	switch kind {
	case Front:
		r.drawOrder = append(append(r.drawOrder[:idx], r.drawOrder[idx+1:]...), id)
	case Back:
		rest := append([]string{id}, r.drawOrder[:idx]...)
		r.drawOrder = append(rest, r.drawOrder[idx+1:]...)
	case Forward:
		if idx+1 < len(r.drawOrder) {
			r.drawOrder[idx], r.drawOrder[idx+1] = r.drawOrder[idx+1], r.drawOrder[idx]
		}
	case Backward:
		if idx > 0 {
			r.drawOrder[idx], r.drawOrder[idx-1] = r.drawOrder[idx-1], r.drawOrder[idx]
		}
	}
}

// CreateClone deep-copies the origin's live state, inserts it with a
// fresh id right after the origin in draw order, and registers its
// scene membership. Returns the new entity.
func (r *Registry) CreateClone(originID string) (*entity.Entity, error) {
	r.mu.Lock()
	origin, ok := r.entities[originID]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("create_clone: unknown entity %q", originID)
	}
	r.mu.Lock()
	r.cloneSeq++
	newID := fmt.Sprintf("%s-clone-%s-%d", originID, uuid.NewString()[:8], r.cloneSeq)
	r.mu.Unlock()

	clone := origin.Clone(newID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[newID] = clone
	idx := -1
	for i, v := range r.drawOrder {
		if v == originID {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.drawOrder = append(r.drawOrder, newID)
	} else {
		r.drawOrder = append(r.drawOrder[:idx+1], append([]string{newID}, r.drawOrder[idx+1:]...)...)
	}
	r.sceneMembers[clone.Scene] = append(r.sceneMembers[clone.Scene], newID)
	return clone, nil
}

// Delete removes an entity from the registry, draw order, and scene
// membership, terminating its scripts first.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entities[id]
	if !ok {
		return
	}
	e.TerminateAll(0)
	delete(r.entities, id)
	for i, v := range r.drawOrder {
		if v == id {
			r.drawOrder = append(r.drawOrder[:i], r.drawOrder[i+1:]...)
			break
		}
	}
	members := r.sceneMembers[e.Scene]
	for i, v := range members {
		if v == id {
			r.sceneMembers[e.Scene] = append(members[:i], members[i+1:]...)
			break
		}
	}
}

// DeleteAllClonesOf removes every clone whose originalId == originID.
func (r *Registry) DeleteAllClonesOf(originID string) {
	var victims []string
	r.mu.RLock()
	for id, e := range r.entities {
		if e.IsClone && e.OriginalID == originID {
			victims = append(victims, id)
		}
	}
	r.mu.RUnlock()
	for _, id := range victims {
		r.Delete(id)
	}
}

// MoveScene updates an entity's recorded scene and scene membership.
// Global (non-scene) entities are not moved. The scheduler's scene
// transitions do not call it; entities keep their authored scene.
func (r *Registry) MoveScene(id, newScene string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entities[id]
	if !ok || e.Scene == "" {
		return
	}
	old := e.Scene
	members := r.sceneMembers[old]
	for i, v := range members {
		if v == id {
			r.sceneMembers[old] = append(members[:i], members[i+1:]...)
			break
		}
	}
	e.Scene = newScene
	r.sceneMembers[newScene] = append(r.sceneMembers[newScene], id)
}
