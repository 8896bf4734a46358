package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

const (
	TimetableNav   = "timetable:"     // timetable:12-06-2024
	TimetableImage = "timetable_img:" // timetable_img:12-06-2024

	DigestOn  = "digest_on"
	DigestOff = "digest_off"

	Noop = "noop"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	case data == Noop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	case strings.HasPrefix(data, TimetableNav):
		HandleTimetableNav(ctx, b, callback, h)
	case strings.HasPrefix(data, TimetableImage):
		HandleTimetableImage(ctx, b, callback, h)

	case data == DigestOn:
		HandleDigestToggle(ctx, b, callback, h, true)
	case data == DigestOff:
		HandleDigestToggle(ctx, b, callback, h, false)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
