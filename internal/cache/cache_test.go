package cache

import (
	"testing"
	"time"

	"github.com/veridict/veridict/internal/model"
)

func TestKey_Deterministic(t *testing.T) {
	k1 := Key("openai", "Newton was born in 1643.")
	k2 := Key("openai", "Newton was born in 1643.")
	if k1 != k2 {
		t.Errorf("Expected identical keys, got %s and %s", k1, k2)
	}

	if Key("openai", "claim") == Key("gemini", "claim") {
		t.Error("Expected different verifiers to produce different keys")
	}
	// The separator must prevent (verifier, claim) boundary collisions
	if Key("a", "bc") == Key("ab", "c") {
		t.Error("Expected boundary-shifted inputs to produce different keys")
	}
}

func TestVerdictCache_RoundTrip(t *testing.T) {
	vc := NewVerdictCache(NewMemoryStore(time.Minute, time.Minute), time.Minute)

	if _, ok := vc.Get("openai", "claim"); ok {
		t.Error("Expected miss on empty cache")
	}

	if err := vc.Set("openai", "claim", model.VerdictYes); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := vc.Get("openai", "claim")
	if !ok || got != model.VerdictYes {
		t.Errorf("Expected cached Yes, got (%q, %v)", got, ok)
	}
}

func TestVerdictCache_RejectsCorruptEntry(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	vc := NewVerdictCache(store, time.Minute)

	_ = store.Set(Key("openai", "claim"), []byte("Maybe"), time.Minute)

	if _, ok := vc.Get("openai", "claim"); ok {
		t.Error("Expected corrupt entry to be treated as a miss")
	}
}

func TestLayeredStore_PromotesDiskHit(t *testing.T) {
	dir := t.TempDir()
	ls := NewLayeredStore(time.Minute, dir, time.Minute)

	if err := ls.Set("k", []byte("Yes"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Fresh layered store over the same dir: memory is cold, disk is warm
	ls2 := NewLayeredStore(time.Minute, dir, time.Minute)
	val, ok := ls2.Get("k")
	if !ok || string(val) != "Yes" {
		t.Errorf("Expected disk hit, got (%q, %v)", val, ok)
	}

	// The hit must now be served from memory
	if val, ok := ls2.memory.Get("k"); !ok || string(val) != "Yes" {
		t.Error("Expected disk hit to be promoted to memory")
	}
}

func TestLayeredStore_NoDiskTier(t *testing.T) {
	ls := NewLayeredStore(time.Minute, "", time.Minute)
	if err := ls.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if val, ok := ls.Get("k"); !ok || string(val) != "v" {
		t.Errorf("Expected memory-only hit, got (%q, %v)", val, ok)
	}
}
