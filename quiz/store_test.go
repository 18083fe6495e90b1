package quiz

import (
	"testing"
	"time"
)

func TestStorePutGetRemove(t *testing.T) {
	store := NewStore()
	e := NewEngine(fakeQuestions{boolQuestion(1, "general", 1, nil)}, fakeRisks{}, nil)

	store.Put("user-1", e)
	got, ok := store.Get("user-1")
	if !ok || got != e {
		t.Fatal("stored engine not returned")
	}
	if _, ok := store.Get("user-2"); ok {
		t.Fatal("unknown key must miss")
	}

	store.Remove("user-1")
	if _, ok := store.Get("user-1"); ok {
		t.Fatal("removed engine still present")
	}
}

func TestStoreReapsOnlyIdleSessions(t *testing.T) {
	store := NewStore()
	e1 := NewEngine(fakeQuestions{boolQuestion(1, "general", 1, nil)}, fakeRisks{}, nil)
	e2 := NewEngine(fakeQuestions{boolQuestion(1, "general", 1, nil)}, fakeRisks{}, nil)
	store.Put("stale", e1)
	store.Put("fresh", e2)

	store.mu.Lock()
	store.engines["stale"].touched = time.Now().Add(-2 * time.Hour)
	store.mu.Unlock()

	if removed := store.ReapIdle(time.Hour); removed != 1 {
		t.Fatalf("expected one reaped session, got %d", removed)
	}
	if _, ok := store.Get("stale"); ok {
		t.Error("stale session survived the reaper")
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Error("fresh session was reaped")
	}
}
