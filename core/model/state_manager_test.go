package model

import (
	"sync"
	"testing"
)

func TestStateManagerLifecycle(t *testing.T) {
	s := NewStateManager()

	if s.IsFitted() {
		t.Error("new StateManager must not be fitted")
	}
	if err := s.RequireFitted(); err == nil {
		t.Error("RequireFitted must fail before fitting")
	}

	s.SetDimensions(40, 100)
	s.SetFitted()

	if !s.IsFitted() {
		t.Error("StateManager must be fitted after SetFitted")
	}
	if err := s.RequireFitted(); err != nil {
		t.Errorf("RequireFitted failed after fitting: %v", err)
	}

	n, L := s.GetDimensions()
	if n != 40 || L != 100 {
		t.Errorf("GetDimensions = (%d, %d), want (40, 100)", n, L)
	}
}

func TestStateManagerConcurrentReads(t *testing.T) {
	s := NewStateManager()
	s.SetDimensions(10, 20)
	s.SetFitted()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !s.IsFitted() {
				t.Error("fitted state must be visible to concurrent readers")
			}
			s.GetDimensions()
		}()
	}
	wg.Wait()
}
