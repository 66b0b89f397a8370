package taskmanager

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestSharedContext_SetAndGet(t *testing.T) {
	sc := NewSharedContext()
	sc.Set("result-1", "Result 1")

	got, ok := sc.Get("result-1")
	if !ok || got != "Result 1" {
		t.Errorf("expected Result 1, got %v (found=%v)", got, ok)
	}

	if _, ok := sc.Get("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}

func TestSharedContext_GetString(t *testing.T) {
	sc := NewSharedContext()
	sc.Set("result-1", "Result 1")
	sc.Set("count", 2)

	if s, err := sc.GetString("result-1"); err != nil || s != "Result 1" {
		t.Errorf("expected Result 1, got %q (%v)", s, err)
	}
	if _, err := sc.GetString("count"); err == nil {
		t.Error("expected type error for non-string value")
	}
	if _, err := sc.GetString("result-2"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestSharedContext_Keys(t *testing.T) {
	sc := NewSharedContext()
	sc.Set("result-2", "Result 2")
	sc.Set("result-1", "Result 1")

	if keys := sc.Keys(); !reflect.DeepEqual(keys, []string{"result-1", "result-2"}) {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestSharedContext_ConcurrentAccess(t *testing.T) {
	sc := NewSharedContext()
	const goroutines, ops = 50, 50

	var wg sync.WaitGroup
	wg.Add(goroutines * 2)
	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < ops; j++ {
				sc.Set(fmt.Sprintf("key_%d_%d", id, j), j)
			}
		}(i)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < ops; j++ {
				sc.Get(fmt.Sprintf("key_%d_%d", id, j))
			}
		}(i)
	}
	wg.Wait()

	if n := len(sc.Keys()); n != goroutines*ops {
		t.Errorf("expected %d keys, got %d", goroutines*ops, n)
	}
}
