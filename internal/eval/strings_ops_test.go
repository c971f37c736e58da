package eval

import "testing"

func TestCharAtIsOneBased(t *testing.T) {
	if got := charAt("hello", 1); got != "h" {
		t.Errorf("charAt(hello,1) = %q, want h", got)
	}
	if got := charAt("hello", 5); got != "o" {
		t.Errorf("charAt(hello,5) = %q, want o", got)
	}
	if got := charAt("hello", 0); got != "" {
		t.Errorf("charAt(hello,0) = %q, want empty", got)
	}
	if got := charAt("hello", 6); got != "" {
		t.Errorf("charAt(hello,6) = %q, want empty", got)
	}
}

func TestSubstringIsOneBasedInclusive(t *testing.T) {
	if got := substring("hello world", 1, 5); got != "hello" {
		t.Errorf("substring(1,5) = %q, want hello", got)
	}
	if got := substring("hello world", 7, 11); got != "world" {
		t.Errorf("substring(7,11) = %q, want world", got)
	}
}

func TestCountMatchesNonOverlapping(t *testing.T) {
	if got := countMatches("aaaa", "aa"); got != 2 {
		t.Errorf("countMatches(aaaa,aa) = %d, want 2", got)
	}
}

func TestIndexOf1Based(t *testing.T) {
	if got := indexOf1Based("hello", "llo"); got != 3 {
		t.Errorf("indexOf1Based(hello,llo) = %d, want 3", got)
	}
	if got := indexOf1Based("hello", "zzz"); got != 0 {
		t.Errorf("indexOf1Based miss = %d, want 0", got)
	}
}

func TestReplaceFirstOccurrenceOnly(t *testing.T) {
	if got := replaceFirst("a-a-a", "a", "b"); got != "b-a-a" {
		t.Errorf("replaceFirst = %q, want b-a-a", got)
	}
}

func TestReverseString(t *testing.T) {
	if got := reverseString("abc"); got != "cba" {
		t.Errorf("reverseString(abc) = %q, want cba", got)
	}
}
