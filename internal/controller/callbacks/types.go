package callbacks

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService      *service.UserService
	TimetableService *service.TimetableService
	Logger           *zap.Logger
}

// NewHandler создаёт callback handler
func NewHandler(
	userService *service.UserService,
	timetableService *service.TimetableService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		UserService:      userService,
		TimetableService: timetableService,
		Logger:           logger,
	}
}

// HandleCallbackQuery обрабатывает все нажатия inline кнопок
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h)
}
