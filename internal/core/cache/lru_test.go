package cache

import "testing"

func TestLRU_EvictsOldest(t *testing.T) {
	c := NewLRU[string, int](2)
	var evicted []string
	c.OnEvict = func(k string, _ int) { evicted = append(evicted, k) }

	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a") // a becomes most-recent
	c.Put("c", 3)     // should evict b

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a present, got %v ok=%v", v, ok)
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("evicted=%v", evicted)
	}
}

func TestLRU_PutUpdatesInPlace(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("a", 2)
	if c.Len() != 1 {
		t.Fatalf("len=%d", c.Len())
	}
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("v=%d", v)
	}
}

func TestLRU_Remove(t *testing.T) {
	c := NewLRU[string, int](0)
	c.Put("a", 1)
	if !c.Remove("a") {
		t.Fatal("expected remove to report presence")
	}
	if c.Remove("a") {
		t.Fatal("second remove should be a no-op")
	}
	if c.Len() != 0 {
		t.Fatalf("len=%d", c.Len())
	}

	var nilCache *LRU[string, int]
	if _, ok := nilCache.Get("x"); ok || nilCache.Len() != 0 {
		t.Fatal("nil cache should be empty")
	}
}
