package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetOrComputeMemoises(t *testing.T) {
	t.Parallel()

	c := New[string](2)
	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	v, hit, err := c.GetOrCompute(1, compute)
	if err != nil || hit || v != "value" {
		t.Fatalf("first call = %q, %v, %v", v, hit, err)
	}
	v, hit, err = c.GetOrCompute(1, compute)
	if err != nil || !hit || v != "value" {
		t.Fatalf("second call = %q, %v, %v", v, hit, err)
	}
	if calls != 1 {
		t.Fatalf("expected one compute, got %d", calls)
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 || s.Entries != 1 {
		t.Fatalf("unexpected stats %#v", s)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := New[int](2)
	for key := uint64(1); key <= 3; key++ {
		k := key
		if _, _, err := c.GetOrCompute(k, func() (int, error) { return int(k), nil }); err != nil {
			t.Fatalf("compute %d: %v", k, err)
		}
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if _, hit, _ := c.GetOrCompute(1, func() (int, error) { return 1, nil }); hit {
		t.Fatalf("expected key 1 to be evicted")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after purge")
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	c := New[int](4)
	boom := errors.New("boom")
	if _, _, err := c.GetOrCompute(7, func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, hit, err := c.GetOrCompute(7, func() (int, error) { return 42, nil })
	if err != nil || hit || v != 42 {
		t.Fatalf("retry = %d, %v, %v", v, hit, err)
	}
}

func TestConcurrentMissesComputeOnce(t *testing.T) {
	t.Parallel()

	c := New[int](4)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.GetOrCompute(9, func() (int, error) {
				calls.Add(1)
				<-release
				return 9, nil
			})
			if err != nil || v != 9 {
				t.Errorf("got %d, %v", v, err)
			}
		}()
	}
	close(release)
	wg.Wait()

	if c.Len() != 1 {
		t.Fatalf("expected single entry, got %d", c.Len())
	}
	if calls.Load() < 1 {
		t.Fatalf("compute never ran")
	}
}

func TestKeyIsBoundaryAware(t *testing.T) {
	t.Parallel()

	a := NewKey().Field("ab").Field("c").Sum64()
	b := NewKey().Field("a").Field("bc").Sum64()
	if a == b {
		t.Fatalf("expected different digests for different field boundaries")
	}
	same := NewKey().Field("ab").Field("c").Sum64()
	if a != same {
		t.Fatalf("expected stable digest")
	}
	if NewKey().Bool(true).Sum64() == NewKey().Bool(false).Sum64() {
		t.Fatalf("bool fields collide")
	}
}
