package varstore

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/entryrt/engine/internal/logging"
)

// cloudEntry is the on-disk shape: {"id": ..., "value": ...} for
// scalars or {"id": ..., "array": [...]} for lists, per §6.
type cloudEntry struct {
	ID    string   `json:"id"`
	Value string   `json:"value,omitempty"`
	Array []string `json:"array,omitempty"`
}

// CloudMirror is a single UTF-8 JSON file holding an array of
// cloudEntry, read on every cloud-read and written on every
// cloud-write. All I/O is best-effort: failures are logged but never
// interrupt script execution, per §4.6/§7.
type CloudMirror struct {
	mu   sync.Mutex
	path string
	log  *logging.Logger
}

func NewCloudMirror(path string, log *logging.Logger) *CloudMirror {
	return &CloudMirror{path: path, log: log}
}

func (c *CloudMirror) readAll() []cloudEntry {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) && c.log != nil {
			c.log.Warn("cloud mirror read failed", map[string]any{"path": c.path, "err": err.Error()})
		}
		return nil
	}
	var entries []cloudEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		if c.log != nil {
			c.log.Warn("cloud mirror decode failed", map[string]any{"path": c.path, "err": err.Error()})
		}
		return nil
	}
	return entries
}

func (c *CloudMirror) writeAll(entries []cloudEntry) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		if c.log != nil {
			c.log.Warn("cloud mirror encode failed", map[string]any{"err": err.Error()})
		}
		return
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		if c.log != nil {
			c.log.Warn("cloud mirror write failed", map[string]any{"path": c.path, "err": err.Error()})
		}
	}
}

// Reload refreshes v from the file, reflecting any out-of-band write
// by another process, best-effort.
func (c *CloudMirror) Reload(v *Variable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.readAll() {
		if e.ID != v.ID {
			continue
		}
		if v.Kind == KindList {
			v.Items = e.Array
		} else {
			v.Value = e.Value
		}
		return
	}
}

// Save mirrors v's current value/items to the file, replacing any
// existing entry with the same id.
func (c *CloudMirror) Save(v *Variable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := c.readAll()
	found := false
	for i := range entries {
		if entries[i].ID == v.ID {
			if v.Kind == KindList {
				entries[i].Array = append([]string(nil), v.Items...)
				entries[i].Value = ""
			} else {
				entries[i].Value = v.Value
				entries[i].Array = nil
			}
			found = true
			break
		}
	}
	if !found {
		e := cloudEntry{ID: v.ID}
		if v.Kind == KindList {
			e.Array = append([]string(nil), v.Items...)
		} else {
			e.Value = v.Value
		}
		entries = append(entries, e)
	}
	c.writeAll(entries)
}
