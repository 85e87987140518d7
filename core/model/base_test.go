package model

import (
	"sync"
	"testing"
)

func TestStateManagerLifecycle(t *testing.T) {
	sm := NewStateManager()

	if sm.IsFitted() {
		t.Error("new StateManager should not be fitted")
	}

	sm.SetFitted()
	sm.SetDimensions(7, 450)

	if !sm.IsFitted() {
		t.Error("IsFitted() = false after SetFitted()")
	}
	nf, ns := sm.Dimensions()
	if nf != 7 || ns != 450 {
		t.Errorf("Dimensions() = (%d, %d), want (7, 450)", nf, ns)
	}

	sm.Reset()
	if sm.IsFitted() {
		t.Error("IsFitted() = true after Reset()")
	}
	nf, ns = sm.Dimensions()
	if nf != 0 || ns != 0 {
		t.Errorf("Dimensions() after Reset = (%d, %d), want (0, 0)", nf, ns)
	}
}

func TestStateManagerConcurrent(t *testing.T) {
	sm := NewStateManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			sm.SetDimensions(n, n*10)
			sm.SetFitted()
		}(i)
		go func() {
			defer wg.Done()
			sm.IsFitted()
			sm.Dimensions()
		}()
	}
	wg.Wait()

	if !sm.IsFitted() {
		t.Error("IsFitted() = false after concurrent SetFitted calls")
	}
}
