package callbacks

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTimetableNav показывает расписание на неделю указанной даты
func HandleTimetableNav(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	common.AnswerCallback(ctx, b, callback.ID, "")

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		h.Logger.Error("No message in timetable callback")
		return
	}

	dateRef, err := common.ParseDateFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse date from callback", zap.Error(err), zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	tt, err := resolveForTelegramUser(ctx, h, callback.From.ID, dateRef)
	if err != nil {
		h.Logger.Error("Failed to resolve timetable",
			zap.Error(err),
			zap.Int64("telegram_id", callback.From.ID),
			zap.String("reference_date", dateRef))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        formatting.FormatTimetable(tt),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: TimetableScreenKeyboard(tt),
	})
}

// HandleTimetableImage отправляет расписание недели картинкой
func HandleTimetableImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	common.AnswerCallback(ctx, b, callback.ID, "⏳ Рисуем расписание...")

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		h.Logger.Error("No message in timetable image callback")
		return
	}

	dateRef, err := common.ParseDateFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	tt, err := resolveForTelegramUser(ctx, h, callback.From.ID, dateRef)
	if err != nil {
		h.Logger.Error("Failed to resolve timetable for image",
			zap.Error(err),
			zap.Int64("telegram_id", callback.From.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	weekStart, err := timetable.ParseRefDate(tt.WeekStart)
	if err != nil {
		h.Logger.Error("Failed to parse week start", zap.Error(err), zap.String("week_start", tt.WeekStart))
		return
	}

	imageData, err := common.GenerateWeekImage(weekStart, tt.Occurrences)
	if err != nil {
		h.Logger.Error("Failed to generate week image", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось сгенерировать изображение")
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: msg.Chat.ID,
		Photo: &models.InputFileUpload{
			Filename: "timetable.png",
			Data:     bytes.NewReader(imageData),
		},
		Caption: "📅 Расписание " + tt.WeekStart + " - " + tt.WeekEnd,
	})
}

// TimetableScreenKeyboard создаёт клавиатуру экрана недельного расписания
func TimetableScreenKeyboard(tt *model.Timetable) *models.InlineKeyboardMarkup {
	todayRef := timetable.FormatRefDate(time.Now())
	return keyboard.TimetableKeyboard(
		TimetableNav+tt.PrevWeekRef,
		TimetableNav+todayRef,
		TimetableNav+tt.NextWeekRef,
		TimetableImage+tt.WeekStart,
	)
}

// resolveForTelegramUser находит привязанного пользователя и его расписание
func resolveForTelegramUser(ctx context.Context, h *Handler, telegramID int64, dateRef string) (*model.Timetable, error) {
	user, err := h.UserService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}
	if user.SchoolUserID == "" {
		return nil, common.ErrUserNotBound
	}

	tt, err := h.TimetableService.ResolveTimetable(ctx, user.SchoolUserID, dateRef)
	if err != nil {
		if errors.Is(err, timetable.ErrInvalidDate) {
			return nil, common.ErrInvalidFormat
		}
		return nil, err
	}
	return tt, nil
}
