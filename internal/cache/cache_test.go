package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRemote struct {
	data    map[string][]byte
	gets    int
	failGet error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: map[string][]byte{}}
}

func (f *fakeRemote) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.gets++
	if f.failGet != nil {
		return nil, false, f.failGet
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeRemote) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeRemote) Clear(_ context.Context) error {
	f.data = map[string][]byte{}
	return nil
}

func newMemory(t *testing.T) *Memory {
	t.Helper()
	m, err := NewMemory(1 << 20)
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := newMemory(t)

	if _, ok, _ := m.Get(ctx, "missing"); ok {
		t.Error("Get(missing) reported a hit")
	}

	if err := m.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	m.Wait()

	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("Get(k) = %q, %v, %v; want v, true, nil", got, ok, err)
	}
}

func TestLayeredBackfillsL1(t *testing.T) {
	ctx := context.Background()
	l1 := newMemory(t)
	remote := newFakeRemote()
	remote.data["sections:abc"] = []byte(`[]`)

	c := NewLayered(l1, remote, time.Hour)

	got, ok, err := c.Get(ctx, "sections:abc")
	if err != nil || !ok || string(got) != "[]" {
		t.Fatalf("Get() = %q, %v, %v; want remote hit", got, ok, err)
	}
	l1.Wait()

	if _, ok, _ := l1.Get(ctx, "sections:abc"); !ok {
		t.Error("remote hit was not copied into L1")
	}

	gets := remote.gets
	if _, ok, _ := c.Get(ctx, "sections:abc"); !ok {
		t.Error("second Get() missed")
	}
	if remote.gets != gets {
		t.Errorf("second Get() went to remote, gets = %d, want %d", remote.gets, gets)
	}
}

func TestLayeredSetWritesBoth(t *testing.T) {
	ctx := context.Background()
	l1 := newMemory(t)
	remote := newFakeRemote()
	c := NewLayered(l1, remote, time.Hour)

	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	l1.Wait()

	if string(remote.data["k"]) != "v" {
		t.Errorf("remote[k] = %q, want v", remote.data["k"])
	}
	if _, ok, _ := l1.Get(ctx, "k"); !ok {
		t.Error("L1 missing k after Set")
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get(k) hit after Clear")
	}
}

func TestLayeredRemoteError(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.failGet = errors.New("connection refused")
	c := NewLayered(newMemory(t), remote, time.Hour)

	if _, ok, err := c.Get(ctx, "k"); ok || err == nil {
		t.Errorf("Get() = ok %v, err %v; want miss with error", ok, err)
	}
}

func TestLayeredWithoutRemote(t *testing.T) {
	ctx := context.Background()
	l1 := newMemory(t)
	c := NewLayered(l1, nil, 0)

	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	l1.Wait()
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Error("memory-only Get() missed")
	}
}

func TestNewMemoryTinyBudget(t *testing.T) {
	for _, maxCost := range []int64{1, 50, 99} {
		m, err := NewMemory(maxCost)
		if err != nil {
			t.Errorf("NewMemory(%d) error = %v", maxCost, err)
			continue
		}
		m.Close()
	}
	if got := numCounters(16 << 20); got != (16<<20)/100*10 {
		t.Errorf("numCounters(16MiB) = %d", got)
	}
}
