package handlers

import (
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService      *service.UserService
	timetableService *service.TimetableService
	stateManager     *state.Manager
	logger           *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	timetableService *service.TimetableService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:      userService,
		timetableService: timetableService,
		stateManager:     stateManager,
		logger:           logger,
	}
}
