// Package model provides the shared state management for fitted estimators.
//
// Every estimator in this module (encoders, transformers, regression fits)
// composes a StateManager rather than embedding a base struct:
//
//	type BoxCoxTransformer struct {
//		state *model.StateManager
//		// estimator-specific fields
//	}
//
//	func (t *BoxCoxTransformer) Fit(y []float64) error {
//		// fitting logic
//		t.state.SetFitted()
//		return nil
//	}
//
// The StateManager tracks whether Fit has succeeded and the dimensions the
// estimator was fitted with, so Transform and Predict can reject calls on
// untrained estimators or mismatched inputs.
package model

import "sync"

// EstimatorState represents the learning state of an estimator.
type EstimatorState int

const (
	// NotFitted indicates the estimator has not been trained.
	NotFitted EstimatorState = iota
	// Fitted indicates the estimator has been trained.
	Fitted
)

// StateManager tracks fitted state and training dimensions for an
// estimator. All methods are safe for concurrent use.
type StateManager struct {
	mu        sync.RWMutex
	state     EstimatorState
	nFeatures int
	nSamples  int
}

// NewStateManager returns a StateManager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{state: NotFitted}
}

// IsFitted reports whether the estimator has been trained.
//
// Estimator methods that require training (Transform, Predict,
// InverseTransform) check this before touching fitted parameters and
// return a NotFittedError when it is false.
func (sm *StateManager) IsFitted() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.state == Fitted
}

// SetFitted marks the estimator as trained. Called by estimator
// implementations at the end of a successful Fit.
func (sm *StateManager) SetFitted() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.state = Fitted
}

// Reset returns the estimator to the untrained state and clears the
// recorded dimensions.
func (sm *StateManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.state = NotFitted
	sm.nFeatures = 0
	sm.nSamples = 0
}

// SetDimensions records the shape of the training data so later calls
// can validate their inputs against it.
func (sm *StateManager) SetDimensions(nFeatures, nSamples int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.nFeatures = nFeatures
	sm.nSamples = nSamples
}

// Dimensions returns the feature and sample counts recorded at fit time.
// Both are zero before the first successful Fit.
func (sm *StateManager) Dimensions() (nFeatures, nSamples int) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.nFeatures, sm.nSamples
}
