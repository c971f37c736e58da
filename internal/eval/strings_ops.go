package eval

import (
	"strings"

	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// charAt returns the 1-based index-th rune, or "" if out of range.
func charAt(s string, idx1 int) string {
	r := []rune(s)
	if idx1 < 1 || idx1 > len(r) {
		return ""
	}
	return string(r[idx1-1])
}

func evalCharAt(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	s := Eval(env, objectID, b.Param(0), th).AsString()
	idx := int(Eval(env, objectID, b.Param(1), th).AsNumber())
	return value.String(charAt(s, idx))
}

// substring returns the 1-based inclusive [from,to] slice.
func substring(s string, from1, to1 int) string {
	r := []rune(s)
	if from1 < 1 {
		from1 = 1
	}
	if to1 > len(r) {
		to1 = len(r)
	}
	if from1 > to1 {
		return ""
	}
	return string(r[from1-1 : to1])
}

func evalSubstring(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	s := Eval(env, objectID, b.Param(0), th).AsString()
	from := int(Eval(env, objectID, b.Param(1), th).AsNumber())
	to := int(Eval(env, objectID, b.Param(2), th).AsNumber())
	return value.String(substring(s, from, to))
}

// countMatches counts non-overlapping occurrences of needle in s.
func countMatches(s, needle string) int {
	if needle == "" {
		return 0
	}
	return strings.Count(s, needle)
}

// indexOf1Based returns the 1-based index of the first occurrence, or
// 0 if not found.
func indexOf1Based(s, needle string) int {
	i := strings.Index(s, needle)
	if i < 0 {
		return 0
	}
	return len([]rune(s[:i])) + 1
}

// replaceFirst replaces only the first occurrence of from with to.
func replaceFirst(s, from, to string) string {
	return strings.Replace(s, from, to, 1)
}

func evalReplace(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	s := Eval(env, objectID, b.Param(0), th).AsString()
	from := Eval(env, objectID, b.Param(1), th).AsString()
	to := Eval(env, objectID, b.Param(2), th).AsString()
	return value.String(replaceFirst(s, from, to))
}

func toUpper(s string) string { return strings.ToUpper(s) }
func toLower(s string) string { return strings.ToLower(s) }
