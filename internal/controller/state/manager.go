package state

import (
	"sync"
)

// Manager хранит состояния диалогов пользователей в памяти.
// Диалог привязки одношаговый, поэтому хранится только само состояние.
// При перезапуске бота состояния теряются и пользователь начинает диалог заново.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]UserState // telegramID -> состояние диалога
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]UserState),
	}
}

// GetState возвращает текущее состояние диалога пользователя.
// Для пользователя без активного диалога возвращается StateNone.
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.states[telegramID]
}

// SetState переводит пользователя в новое состояние диалога.
func (sm *Manager) SetState(telegramID int64, st UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if st == StateNone {
		delete(sm.states, telegramID)
		return
	}
	sm.states[telegramID] = st
}

// ClearState завершает диалог пользователя.
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
