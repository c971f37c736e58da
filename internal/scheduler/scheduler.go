// Package scheduler implements §4.3's tick loop and §4.4's event bus
// dispatch/scene controller, driving the interpreter one slice per
// ready script per tick in deterministic (scene, draw-order, thread
// sequence) order.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/entryrt/engine/internal/entity"
	"github.com/entryrt/engine/internal/eval"
	"github.com/entryrt/engine/internal/eventbus"
	"github.com/entryrt/engine/internal/interp"
	"github.com/entryrt/engine/internal/logging"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/registry"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/varstore"
)

// Scheduler owns the tick loop and implements interp.Host for the
// operations that reach beyond the calling thread: scene transitions,
// clone lifecycle, restart, and message fan-out.
type Scheduler struct {
	Env      *eval.Env
	Registry *registry.Registry
	Vars     *varstore.Store
	Index    *eventbus.Index
	Bus      *eventbus.Bus
	Interp   *interp.Interp
	Log      *logging.Logger

	project *model.Project
	scenes  []string

	mu           sync.Mutex
	currentScene string

	seq       uint64
	threadSeq uint64

	pressedKeys  map[string]bool
	clickedHeld  map[string]bool

	pendingMessages []string
	restartRequested bool
}

// New builds a Scheduler ready to run a parsed, loaded project. The
// registry and variable store must already have LoadProject called on
// them, and Index must already be built via eventbus.Build(p).
func New(p *model.Project, env *eval.Env, idx *eventbus.Index, bus *eventbus.Bus, log *logging.Logger) *Scheduler {
	scenes := make([]string, len(p.Scenes))
	for i, s := range p.Scenes {
		scenes[i] = s.ID
	}
	s := &Scheduler{
		Env:         env,
		Registry:    env.Registry,
		Vars:        env.Vars,
		Index:       idx,
		Bus:         bus,
		Log:         log,
		project:     p,
		scenes:      scenes,
		pressedKeys: make(map[string]bool),
		clickedHeld: make(map[string]bool),
	}
	s.Interp = interp.New(env, s, p.TargetFPS())
	return s
}

func (s *Scheduler) nextThreadID() thread.ID {
	return thread.ID(atomic.AddUint64(&s.seq, 1))
}

func (s *Scheduler) nextSeq() uint64 {
	return atomic.AddUint64(&s.threadSeq, 1)
}

// CurrentScene returns the scene currently active for script dispatch.
func (s *Scheduler) CurrentScene() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentScene
}

// Start loads the project's starting scene and fires the initial
// start-clicked dispatch, per §4.3/§4.4.
func (s *Scheduler) Start() {
	s.mu.Lock()
	s.currentScene = s.project.StartSceneID()
	s.mu.Unlock()
	s.publish(eventbus.NewStartClicked())
	s.dispatchRefs(s.Index.OnStart())
	s.dispatchScene(s.currentScene)
}

// publish mirrors e to the observer bus, if one is attached. It is a
// no-op when Bus is nil so tests can build a Scheduler without one.
func (s *Scheduler) publish(e eventbus.Event) {
	if s.Bus != nil {
		s.Bus.Publish(e)
	}
}

// Run drives Tick in a loop at the project's target FPS until stop is
// closed, sleeping between ticks per §4.3 step 5. It is the
// production driver; tests call Tick directly for deterministic
// frame-by-frame control.
func (s *Scheduler) Run(stop <-chan struct{}) {
	interval := time.Second / time.Duration(s.project.TargetFPS())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick runs exactly one scheduler iteration per §4.3: poll input,
// clear expired waits, drain messages raised in the prior tick, run
// one slice per ready thread in (scene, draw-order, sequence) order,
// then update dialogs. It never sleeps and never renders — both are
// the caller's responsibility (Run, or the external render loop).
func (s *Scheduler) Tick() {
	s.pollInput()

	if s.takeRestart() {
		s.applyRestart()
		return
	}

	for _, msg := range s.drainMessages() {
		s.dispatchRefs(s.Index.ByMessage(msg))
	}

	now := s.Env.Clock.NowMs()
	for _, ref := range s.runnableOrder() {
		e, found := s.Registry.Get(ref.objectID)
		if !found {
			continue
		}
		s.tickEntityThread(e, ref.threadID, now)
	}

	for _, id := range s.Registry.All() {
		if e, found := s.Registry.Get(id); found {
			e.UpdateDialog(now)
		}
	}
}

type threadRef struct {
	objectID  string
	threadID  thread.ID
	sceneIdx  int
	drawIdx   int
	sequence  uint64
}

// runnableOrder snapshots every live thread-state across every
// entity and sorts it by the tick-ordering contract of §4.3: scene
// order, then draw-order position, then dispatch sequence number.
func (s *Scheduler) runnableOrder() []threadRef {
	sceneIndex := make(map[string]int, len(s.scenes))
	for i, id := range s.scenes {
		sceneIndex[id] = i
	}

	var refs []threadRef
	for _, id := range s.Registry.All() {
		e, found := s.Registry.Get(id)
		if !found {
			continue
		}
		e.Lock()
		for tid, st := range e.Threads() {
			refs = append(refs, threadRef{
				objectID: id,
				threadID: tid,
				sceneIdx: sceneIndex[e.Scene],
				drawIdx:  s.Registry.DrawIndex(id),
				sequence: st.Sequence,
			})
		}
		e.Unlock()
	}

	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && less(refs[j], refs[j-1]); j-- {
			refs[j], refs[j-1] = refs[j-1], refs[j]
		}
	}
	return refs
}

func less(a, b threadRef) bool {
	if a.sceneIdx != b.sceneIdx {
		return a.sceneIdx < b.sceneIdx
	}
	if a.drawIdx != b.drawIdx {
		return a.drawIdx < b.drawIdx
	}
	return a.sequence < b.sequence
}

// tickEntityThread applies the three-way per-thread step of §4.3's
// tick loop body to one thread-state. The owning entity's lock is held
// only while the thread-state is inspected; the slice itself runs
// unlocked, and the handlers lock the entity per operation.
func (s *Scheduler) tickEntityThread(e *entity.Entity, id thread.ID, now int64) {
	e.Lock()
	st, found := e.Threads()[id]
	if !found {
		e.Unlock()
		return
	}
	terminate := st.TerminateRequested
	var runnable bool
	var script *model.Script
	if !terminate {
		runnable = !st.Waiting || s.waitCleared(st, now)
		script = st.Script
	}
	e.Unlock()

	if terminate {
		e.RemoveThread(id)
		return
	}
	if !runnable {
		return
	}

	res := s.Interp.RunSlice(e.ID, st, script)
	if res.Outcome == interp.Failed || res.ScriptDone || st.TerminateRequested {
		e.RemoveThread(id)
	}
}

// waitCleared evaluates whether a thread-state's suspension condition
// has resolved, per the four wait kinds enumerated in §4.3/§5. It
// also performs the wait kind's side effect (delivering the answer
// text) where one is required.
func (s *Scheduler) waitCleared(st *thread.State, now int64) bool {
	switch st.WaitType {
	case thread.ExplicitWaitSecond, thread.BlockInternal:
		if now >= st.WaitEndMs {
			st.ClearWait()
			return true
		}
	case thread.SoundFinish:
		if s.Env.Audio == nil || !s.Env.Audio.IsPlaying(st.WaitSoundOwner, st.WaitSoundID) {
			st.ClearWait()
			return true
		}
	case thread.TextInput:
		if text, ok := s.Env.Input.PendingTextSubmit(); ok {
			s.Env.Vars.SetAnswer(text)
			st.ClearWait()
			return true
		}
	}
	return false
}

func (s *Scheduler) takeRestart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.restartRequested
	s.restartRequested = false
	return v
}

// pollInput samples the input source once per tick and dispatches
// edge-triggered key-pressed and object-clicked/released scripts, per
// §4.4's event indexes. Keys and clicked objects dispatch a fresh
// thread only on the rising edge (pressed this tick, not pressed the
// previous tick) so a held key does not respawn its script every
// frame.
func (s *Scheduler) pollInput() {
	if s.Env.Input == nil {
		return
	}
	for _, code := range s.Index.Keys() {
		down := s.Env.Input.KeyPressed(code)
		if down && !s.pressedKeys[code] {
			s.publish(eventbus.NewKeyPressed(code))
			s.dispatchRefs(s.Index.ByKey(code))
		}
		s.pressedKeys[code] = down
	}

	clickedID, clicked := s.Env.Input.ClickedObjectID()
	for id := range s.clickedHeld {
		if !clicked || id != clickedID {
			if s.clickedHeld[id] {
				s.dispatchRefs(s.Index.ByObjectRelease(id))
			}
			delete(s.clickedHeld, id)
		}
	}
	if clicked && !s.clickedHeld[clickedID] {
		s.publish(eventbus.NewObjectClicked(clickedID))
		s.dispatchRefs(s.Index.ByObjectClick(clickedID))
		s.clickedHeld[clickedID] = true
	}
}

// spawn creates a fresh thread-state for ref and attaches it to its
// owning entity, per §4.4's "raising an event spawns a fresh
// thread-state per matching script with a new threadId".
func (s *Scheduler) spawn(ref eventbus.ScriptRef) {
	s.spawnFor(ref.ObjectID, ref.Script)
}

// spawnFor is like spawn but attaches the thread-state to objectID
// rather than the script's authored owner. create_clone needs this:
// a when_clone_start script is authored on the original object but
// must run against the freshly minted clone entity, not the original.
func (s *Scheduler) spawnFor(objectID string, script *model.Script) {
	e, found := s.Registry.Get(objectID)
	if !found {
		return
	}
	th := thread.New(s.nextThreadID(), s.nextSeq(), s.CurrentScene(), objectID, script)
	e.AddThread(th)
	if s.Log != nil {
		s.Log.Debug("script dispatched", map[string]any{"object": objectID, "thread": th.ID})
	}
}

func (s *Scheduler) dispatchRefs(refs []eventbus.ScriptRef) {
	for _, ref := range refs {
		s.spawn(ref)
	}
}

func (s *Scheduler) dispatchScene(sceneID string) {
	s.dispatchRefs(s.Index.ByScene(sceneID))
}

// --- interp.Host ---

// StartScene implements §4.4's scene transition: terminate every
// thread whose owning entity is not in the new scene (and is not
// global), then fire when_scene_start. Entities keep their scene.
func (s *Scheduler) StartScene(sceneID string) {
	if !s.sceneExists(sceneID) {
		if s.Log != nil {
			s.Log.Warn("start_scene: unknown scene", map[string]any{"scene": sceneID})
		}
		return
	}
	s.transitionTo(sceneID)
}

// NextScene implements start_neighbor_scene(next|prev), wrapping
// modulo the project's scene count.
func (s *Scheduler) NextScene(direction string) {
	if len(s.scenes) == 0 {
		return
	}
	cur := s.CurrentScene()
	idx := 0
	for i, id := range s.scenes {
		if id == cur {
			idx = i
			break
		}
	}
	if direction == "prev" {
		idx = (idx - 1 + len(s.scenes)) % len(s.scenes)
	} else {
		idx = (idx + 1) % len(s.scenes)
	}
	s.transitionTo(s.scenes[idx])
}

func (s *Scheduler) sceneExists(id string) bool {
	for _, sc := range s.scenes {
		if sc == id {
			return true
		}
	}
	return false
}

func (s *Scheduler) transitionTo(sceneID string) {
	for _, id := range s.Registry.All() {
		e, found := s.Registry.Get(id)
		if !found {
			continue
		}
		if e.Scene == "" || e.Scene == sceneID {
			continue
		}
		e.TerminateAll(noThread)
	}
	s.mu.Lock()
	s.currentScene = sceneID
	s.mu.Unlock()
	s.publish(eventbus.NewSceneStart(sceneID))
	s.dispatchScene(sceneID)
}

// RestartProject implements restart_project: unload clones, reset
// variables to their authored initial values, and re-dispatch
// start-clicked, all applied at the start of the next tick so the
// calling slice finishes cleanly first.
func (s *Scheduler) RestartProject() {
	s.mu.Lock()
	s.restartRequested = true
	s.mu.Unlock()
}

func (s *Scheduler) applyRestart() {
	for _, id := range s.Registry.All() {
		if e, found := s.Registry.Get(id); found && e.IsClone {
			s.Registry.Delete(id)
		}
	}
	for _, id := range s.Registry.All() {
		if e, found := s.Registry.Get(id); found {
			e.TerminateAll(noThread)
		}
	}
	cloud := s.Vars.CloudMirror()
	s.Vars = varstore.New(s.Log)
	s.Vars.SetCloudMirror(cloud)
	s.Vars.LoadProject(s.project)
	s.Env.Vars = s.Vars
	s.Env.ResetTimer()
	s.Start()
}

// CreateClone implements create_clone(target): clones of "self" or a
// named object's id are created via the registry, registered for
// when_clone_start dispatch keyed by the original id.
func (s *Scheduler) CreateClone(targetID, callerObjectID string) (string, error) {
	clone, err := s.Registry.CreateClone(targetID)
	if err != nil {
		return "", err
	}
	s.publish(eventbus.NewCloneStart(clone.ID))
	for _, ref := range s.Index.ByCloneOrigin(clone.OriginalID) {
		s.spawnFor(clone.ID, ref.Script)
	}
	return clone.ID, nil
}

func (s *Scheduler) DeleteClone(objectID string) {
	if e, found := s.Registry.Get(objectID); found && e.IsClone {
		s.Registry.Delete(objectID)
	}
}

func (s *Scheduler) RemoveAllClones(originID string) {
	s.Registry.DeleteAllClonesOf(originID)
}

// CastMessage implements message_cast: per §4.4, messages raised
// during a slice take effect in the next tick's event drain.
func (s *Scheduler) CastMessage(messageID string) {
	s.mu.Lock()
	s.pendingMessages = append(s.pendingMessages, messageID)
	s.mu.Unlock()
	s.publish(eventbus.NewMessageCast(messageID))
}

func (s *Scheduler) drainMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pendingMessages
	s.pendingMessages = nil
	return out
}

// noThread never matches a real thread.ID, used to terminate every
// thread on an entity unconditionally via Entity.TerminateAll.
const noThread thread.ID = thread.ID(^uint64(0))
