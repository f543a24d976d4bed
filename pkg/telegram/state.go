package telegram

import (
	"sync"
)

// UserState represents the current state of a user in conversation flow
type UserState string

const (
	StateIdle         UserState = "idle"
	StateAwaitingEdit UserState = "awaiting_edit"
)

// UserStateData holds temporary data for user's current operation
type UserStateData struct {
	State UserState

	// coordinates of the draft being edited, valid in StateAwaitingEdit
	EditSessionID string
	EditIndex     int
}

// StateManager manages user states across conversations
type StateManager struct {
	mu     sync.RWMutex
	states map[int64]*UserStateData
}

// NewStateManager creates a new state manager
func NewStateManager() *StateManager {
	return &StateManager{
		states: make(map[int64]*UserStateData),
	}
}

// GetState returns the current state for a user
func (sm *StateManager) GetState(telegramUserID int64) *UserStateData {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if state, exists := sm.states[telegramUserID]; exists {
		return state
	}
	return &UserStateData{State: StateIdle}
}

// SetStateData sets complete state data for a user
func (sm *StateManager) SetStateData(telegramUserID int64, data *UserStateData) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[telegramUserID] = data
}

// ClearState clears the state for a user
func (sm *StateManager) ClearState(telegramUserID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramUserID)
}
