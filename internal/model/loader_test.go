package model

import (
	"errors"
	"testing"
)

func TestLoader_CachesMatchingRef(t *testing.T) {
	rt := NewMockRuntime()
	l := NewLoader(rt)

	m1, err := l.Load("animals-model")
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	m2, err := l.Load("animals-model")
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	if m1 != m2 {
		t.Error("second load with same ref should return the cached model")
	}
	if got := len(rt.Loads()); got != 1 {
		t.Errorf("runtime should be hit once, got %d loads", got)
	}
}

func TestLoader_DefaultModel(t *testing.T) {
	rt := NewMockRuntime()
	l := NewLoader(rt)

	if _, err := l.Load(""); err != nil {
		t.Fatalf("default load failed: %v", err)
	}
	if _, err := l.Load(""); err != nil {
		t.Fatalf("cached default load failed: %v", err)
	}

	loads := rt.Loads()
	if len(loads) != 1 || loads[0] != "" {
		t.Errorf("expected one default load, got %v", loads)
	}
}

func TestLoader_RefChangeReloads(t *testing.T) {
	rt := NewMockRuntime()
	def := NewMockModel()
	animals := NewMockModel()
	rt.Register("", def)
	rt.Register("animals-model", animals)

	l := NewLoader(rt)

	if _, err := l.Load(""); err != nil {
		t.Fatalf("default load failed: %v", err)
	}
	if _, err := l.Load("animals-model"); err != nil {
		t.Fatalf("category load failed: %v", err)
	}

	// The default model must have been dropped when the ref changed.
	if !def.Closed() {
		t.Error("previous model should be closed when a different ref loads")
	}
	if animals.Closed() {
		t.Error("active model should not be closed")
	}

	ref, ok := l.ActiveRef()
	if !ok || ref != "animals-model" {
		t.Errorf("ActiveRef = %q, %v; want animals-model, true", ref, ok)
	}
}

func TestLoader_Invalidate(t *testing.T) {
	rt := NewMockRuntime()
	m := NewMockModel()
	rt.Register("", m)

	l := NewLoader(rt)
	if _, err := l.Load(""); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	l.Invalidate()

	if !m.Closed() {
		t.Error("Invalidate should close the cached model")
	}
	if _, ok := l.ActiveRef(); ok {
		t.Error("no ref should be active after Invalidate")
	}

	if _, err := l.Load(""); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := len(rt.Loads()); got != 2 {
		t.Errorf("load after Invalidate should hit the runtime, got %d loads", got)
	}
}

func TestLoader_LoadFailure(t *testing.T) {
	rt := NewMockRuntime()
	rt.SetError(errors.New("network down"))

	l := NewLoader(rt)
	_, err := l.Load("animals-model")
	if !errors.Is(err, ErrNoModel) {
		t.Errorf("load failure should wrap ErrNoModel, got %v", err)
	}
	if _, ok := l.ActiveRef(); ok {
		t.Error("failed load must not leave a ref active")
	}
}

func TestLoader_InvalidateWithoutLoadIsSafe(t *testing.T) {
	l := NewLoader(NewMockRuntime())
	l.Invalidate()
	l.Invalidate()
}
