package varstore

import "strings"

// ListAdd appends a value to the end of the list.
func (s *Store) ListAdd(id, currentObject, value string) {
	v, ok := s.List(id, currentObject)
	if !ok {
		return
	}
	s.mu.Lock()
	v.Items = append(v.Items, value)
	s.mu.Unlock()
	s.mirrorIfNeeded(v)
}

// ListRemoveAt removes the 1-based index. Removing from an empty list
// or with an out-of-range index is a no-op (logged at WARN).
func (s *Store) ListRemoveAt(id, currentObject string, idx1 int) {
	v, ok := s.List(id, currentObject)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx1 < 1 || idx1 > len(v.Items) {
		if s.log != nil {
			s.log.Warn("list remove out of range or empty", map[string]any{"id": id, "index": idx1})
		}
		return
	}
	i := idx1 - 1
	v.Items = append(v.Items[:i], v.Items[i+1:]...)
	s.mirrorIfNeededLocked(v)
}

// ListInsertAt inserts value before the 1-based index (len+1 appends).
func (s *Store) ListInsertAt(id, currentObject string, idx1 int, value string) {
	v, ok := s.List(id, currentObject)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx1 < 1 || idx1 > len(v.Items)+1 {
		if s.log != nil {
			s.log.Warn("list insert out of range", map[string]any{"id": id, "index": idx1})
		}
		return
	}
	i := idx1 - 1
	v.Items = append(v.Items[:i], append([]string{value}, v.Items[i:]...)...)
	s.mirrorIfNeededLocked(v)
}

// ListReplaceAt overwrites the 1-based index.
func (s *Store) ListReplaceAt(id, currentObject string, idx1 int, value string) {
	v, ok := s.List(id, currentObject)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx1 < 1 || idx1 > len(v.Items) {
		if s.log != nil {
			s.log.Warn("list replace out of range", map[string]any{"id": id, "index": idx1})
		}
		return
	}
	v.Items[idx1-1] = value
	s.mirrorIfNeededLocked(v)
}

// ListContains reports whether value appears verbatim in the list.
func (s *Store) ListContains(id, currentObject, value string) bool {
	v, ok := s.List(id, currentObject)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range v.Items {
		if it == value {
			return true
		}
	}
	return false
}

// ListIndexOf returns the 1-based index of the first match, or 0.
func (s *Store) ListIndexOf(id, currentObject, value string) int {
	v, ok := s.List(id, currentObject)
	if !ok {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range v.Items {
		if it == value {
			return i + 1
		}
	}
	return 0
}

// ListLength returns the list's item count.
func (s *Store) ListLength(id, currentObject string) int {
	v, ok := s.List(id, currentObject)
	if !ok {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(v.Items)
}

// ListValueAt resolves value_of_index_from_list: a literal 1-based
// index, the sentinel "last", or "random" (uniform among items, via
// the supplied rng float in [0,1)).
func (s *Store) ListValueAt(id, currentObject, selector string, rngFloat01 float64) string {
	v, ok := s.List(id, currentObject)
	if !ok {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(v.Items)
	if n == 0 {
		return ""
	}
	switch strings.ToLower(selector) {
	case "last":
		return v.Items[n-1]
	case "random":
		i := int(rngFloat01 * float64(n))
		if i >= n {
			i = n - 1
		}
		return v.Items[i]
	default:
		idx, err := parseIndex(selector)
		if err != nil || idx < 1 || idx > n {
			return ""
		}
		return v.Items[idx-1]
	}
}

func parseIndex(s string) (int, error) {
	n, ok := parseNum(s)
	if !ok {
		return 0, errInvalidIndex
	}
	return int(n), nil
}

var errInvalidIndex = &indexErr{}

type indexErr struct{}

func (*indexErr) Error() string { return "invalid list index" }

// mirrorIfNeededLocked is mirrorIfNeeded for callers already holding
// s.mu; it releases the lock around the (potentially slow) file I/O
// and re-acquires so deferred Unlock in the caller remains valid.
func (s *Store) mirrorIfNeededLocked(v *Variable) {
	if !v.IsCloud || s.cloud == nil {
		return
	}
	s.mu.Unlock()
	s.cloud.Save(v)
	s.mu.Lock()
}
