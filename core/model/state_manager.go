// Package model provides state management for classiFunc estimators.
package model

import (
	"fmt"
	"sync"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
// Estimators hold it by composition rather than embedding. The state
// transitions once from unfitted to fitted; Predict-style reads never mutate it,
// so a fitted model is safe to share across goroutines.
type StateManager struct {
	Fitted bool
	mu     sync.RWMutex

	// Dimensions of the processed training curves.
	NSamples    int
	NGridPoints int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{
		Fitted: false,
	}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
}

// SetDimensions sets the number of curves and grid points seen during fitting.
func (s *StateManager) SetDimensions(nSamples, nGridPoints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NSamples = nSamples
	s.NGridPoints = nGridPoints
}

// GetDimensions returns the number of curves and grid points seen during fitting.
func (s *StateManager) GetDimensions() (nSamples, nGridPoints int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NSamples, s.NGridPoints
}

// RequireFitted returns an error if the model has not been fitted.
func (s *StateManager) RequireFitted() error {
	if !s.IsFitted() {
		return fmt.Errorf("model has not been fitted yet. Call Fit() first")
	}
	return nil
}
