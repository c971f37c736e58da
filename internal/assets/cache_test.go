package assets

import "testing"

func TestTextureHandleCachesLoadResult(t *testing.T) {
	c := New(nil)
	calls := 0
	load := func() (string, error) {
		calls++
		return "tex-handle", nil
	}
	h1, err := c.TextureHandle("costume-1", load)
	if err != nil {
		t.Fatalf("TextureHandle: %v", err)
	}
	h2, err := c.TextureHandle("costume-1", load)
	if err != nil {
		t.Fatalf("TextureHandle: %v", err)
	}
	if h1 != "tex-handle" || h2 != "tex-handle" {
		t.Fatalf("unexpected handles %q %q", h1, h2)
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1 (second lookup should hit cache)", calls)
	}
}

func TestFontHandleKeyedByFamilyAndSize(t *testing.T) {
	c := New(nil)
	calls := 0
	load := func() (string, error) {
		calls++
		return "font-handle", nil
	}
	c.FontHandle("Nanum", 12, load)
	c.FontHandle("Nanum", 14, load)
	if calls != 2 {
		t.Errorf("load called %d times, want 2 (different sizes are different cache keys)", calls)
	}
}

func TestInvalidateAllPurgesBothCaches(t *testing.T) {
	c := New(nil)
	c.TextureHandle("a", func() (string, error) { return "h", nil })
	c.FontHandle("Nanum", 12, func() (string, error) { return "h", nil })
	c.InvalidateAll()

	calls := 0
	c.TextureHandle("a", func() (string, error) { calls++; return "h2", nil })
	if calls != 1 {
		t.Error("TextureHandle should reload after InvalidateAll purged the cache")
	}

	fontCalls := 0
	c.FontHandle("Nanum", 12, func() (string, error) { fontCalls++; return "h2", nil })
	if fontCalls != 1 {
		t.Error("FontHandle should reload after InvalidateAll purged the cache")
	}
}
