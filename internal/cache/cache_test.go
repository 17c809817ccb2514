package cache

import (
	"slices"
	"testing"
)

func TestCachePutGet(t *testing.T) {
	c := New()

	if _, ok := c.Get("a.png"); ok {
		t.Fatal("Expected miss on empty cache")
	}

	c.Put("a.png", []string{"#112233", "#445566"})

	got, ok := c.Get("a.png")
	if !ok {
		t.Fatal("Expected hit after Put")
	}
	if !slices.Equal(got, []string{"#112233", "#445566"}) {
		t.Errorf("Get() = %v", got)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestCacheCopiesEntries(t *testing.T) {
	c := New()
	in := []string{"#000000"}
	c.Put("a.png", in)
	in[0] = "#ffffff"

	out, _ := c.Get("a.png")
	if out[0] != "#000000" {
		t.Errorf("Cache entry changed through caller slice: %v", out)
	}

	out[0] = "#ffffff"
	again, _ := c.Get("a.png")
	if again[0] != "#000000" {
		t.Errorf("Cache entry changed through returned slice: %v", again)
	}
}

func TestCacheKeysByExactPath(t *testing.T) {
	c := New()
	c.Put("images/a.png", []string{"#000000"})

	if _, ok := c.Get("./images/a.png"); ok {
		t.Error("Expected different path spellings to be separate entries")
	}
}

func TestCachePutReplaces(t *testing.T) {
	c := New()
	c.Put("a.png", []string{"#000000"})
	c.Put("a.png", []string{"#ffffff", "#111111"})

	got, ok := c.Get("a.png")
	if !ok || len(got) != 2 || got[0] != "#ffffff" {
		t.Errorf("Get() = %v, %v; want replaced entry", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}
