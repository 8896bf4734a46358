package callbacks

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDigestToggle включает или выключает ежедневную сводку
func HandleDigestToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler, enabled bool) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		h.Logger.Error("No message in digest callback")
		return
	}

	err := h.UserService.SetDigestEnabled(ctx, callback.From.ID, enabled)
	if err != nil {
		h.Logger.Error("Failed to toggle digest",
			zap.Error(err),
			zap.Int64("telegram_id", callback.From.ID),
			zap.Bool("enabled", enabled))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if enabled {
		common.AnswerCallback(ctx, b, callback.ID, "✅ Сводка включена")
	} else {
		common.AnswerCallback(ctx, b, callback.ID, "Сводка выключена")
	}

	text, kb := DigestScreen(enabled)
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
}

// DigestScreen возвращает текст и клавиатуру экрана настроек сводки
func DigestScreen(enabled bool) (string, *models.InlineKeyboardMarkup) {
	if enabled {
		text := "🌅 <b>Ежедневная сводка включена</b>\n\n" +
			"Каждое утро бот будет присылать занятия на день."
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("🔕 Выключить", DigestOff)).
			Build()
		return text, kb
	}

	text := "🌅 <b>Ежедневная сводка выключена</b>\n\n" +
		"Включите её, чтобы получать занятия на день каждое утро."
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔔 Включить", DigestOn)).
		Build()
	return text, kb
}
