// Package varstore implements the scoped variable/list table
// described in §4.6: a flat table keyed by (id, owner), with
// owner == "" for globals, plus a best-effort file-backed mirror for
// cloud-flagged variables and lists.
package varstore

import (
	"strconv"
	"sync"

	"github.com/entryrt/engine/internal/logging"
	"github.com/entryrt/engine/internal/model"
)

// Kind distinguishes a scalar variable from a list, timer, or answer
// slot, per §3's variableType.
type Kind string

const (
	KindVariable Kind = "variable"
	KindList     Kind = "list"
	KindTimer    Kind = "timer"
	KindAnswer   Kind = "answer"
)

// Variable is one entry of the store.
type Variable struct {
	ID      string
	Name    string
	Owner   string // "" for global
	Kind    Kind
	Value   string
	Items   []string // populated when Kind == KindList
	IsCloud bool
	Visible bool
}

type key struct {
	id    string
	owner string
}

// Store is the flat (id, owner) variable table.
type Store struct {
	mu    sync.Mutex
	vars  map[key]*Variable
	byID  map[string][]*Variable // all entries sharing an authored id, across owners
	cloud *CloudMirror
	log   *logging.Logger

	answer string
}

func New(log *logging.Logger) *Store {
	return &Store{
		vars: make(map[key]*Variable),
		byID: make(map[string][]*Variable),
		log:  log,
	}
}

// SetCloudMirror attaches the file-backed cloud-variable mirror.
func (s *Store) SetCloudMirror(c *CloudMirror) { s.cloud = c }

// CloudMirror returns the attached cloud mirror, or nil if none, so
// restart_project can carry it over to the fresh Store it builds.
func (s *Store) CloudMirror() *CloudMirror { return s.cloud }

// LoadProject registers every authored variable/list.
func (s *Store) LoadProject(p *model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, vd := range p.Variables {
		v := &Variable{
			ID:      vd.ID,
			Name:    vd.Name,
			Owner:   vd.Object,
			Kind:    Kind(vd.VariableType),
			Value:   vd.Value,
			Items:   append([]string(nil), vd.Array...),
			IsCloud: vd.IsCloud,
			Visible: vd.Visible,
		}
		if v.Kind == "" {
			v.Kind = KindVariable
		}
		k := key{id: v.ID, owner: v.Owner}
		s.vars[k] = v
		s.byID[v.ID] = append(s.byID[v.ID], v)
	}
}

// Resolve implements the lookup order from §4.1: first
// (id, owner==currentObject), else (id, global); nil, false on miss.
func (s *Store) Resolve(id, currentObject string) (*Variable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vars[key{id: id, owner: currentObject}]; ok {
		return v, true
	}
	if v, ok := s.vars[key{id: id, owner: ""}]; ok {
		return v, true
	}
	return nil, false
}

func (s *Store) reloadCloudIfNeeded(v *Variable) {
	if v.IsCloud && s.cloud != nil {
		s.cloud.Reload(v)
	}
}

func (s *Store) mirrorIfNeeded(v *Variable) {
	if v.IsCloud && s.cloud != nil {
		s.cloud.Save(v)
	}
}

// Get reads a scalar variable's value, reloading from the cloud
// mirror first if it is cloud-flagged (best-effort, per §4.6).
func (s *Store) Get(id, currentObject string) string {
	s.mu.Lock()
	v, ok := s.vars[key{id: id, owner: currentObject}]
	if !ok {
		v, ok = s.vars[key{id: id, owner: ""}]
	}
	s.mu.Unlock()
	if !ok {
		if s.log != nil {
			s.log.Warn("variable lookup miss", map[string]any{"id": id})
		}
		return ""
	}
	s.reloadCloudIfNeeded(v)
	return v.Value
}

// Set writes a scalar variable's value and mirrors it if cloud-flagged.
func (s *Store) Set(id, currentObject, value string) {
	s.mu.Lock()
	v, ok := s.vars[key{id: id, owner: currentObject}]
	if !ok {
		v, ok = s.vars[key{id: id, owner: ""}]
	}
	s.mu.Unlock()
	if !ok {
		if s.log != nil {
			s.log.Warn("set_variable on unknown id", map[string]any{"id": id})
		}
		return
	}
	s.mu.Lock()
	v.Value = value
	s.mu.Unlock()
	s.mirrorIfNeeded(v)
}

// Change adds to a variable: numeric addition if both the current
// value and delta coerce to numbers, else string concatenation, with
// the numeric result re-formatted per the trailing-zero-strip rule.
func (s *Store) Change(id, currentObject string, deltaIsNumeric bool, deltaNum float64, deltaStr string, format func(float64) string) {
	s.mu.Lock()
	v, ok := s.vars[key{id: id, owner: currentObject}]
	if !ok {
		v, ok = s.vars[key{id: id, owner: ""}]
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	cur, curIsNum := parseNum(v.Value)
	if curIsNum && deltaIsNumeric {
		s.mu.Lock()
		v.Value = format(cur + deltaNum)
		s.mu.Unlock()
	} else {
		s.mu.Lock()
		v.Value = v.Value + deltaStr
		s.mu.Unlock()
	}
	s.mirrorIfNeeded(v)
}

func parseNum(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// List returns the list variable for (id, owner lookup), or nil.
func (s *Store) List(id, currentObject string) (*Variable, bool) {
	return s.Resolve(id, currentObject)
}

// SetAnswer delivers ask_and_wait's submitted text into the project's
// distinguished answer slot: whichever authored global variable has
// VariableType "answer", or an unbacked fallback slot if the project
// declared none, per §3/§4.2.4.
func (s *Store) SetAnswer(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vars {
		if v.Kind == KindAnswer && v.Owner == "" {
			v.Value = text
			s.answer = text
			return
		}
	}
	s.answer = text
}

// Answer reads the current answer slot.
func (s *Store) Answer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answer
}
