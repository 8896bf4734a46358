package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Произошла ошибка при регистрации. Попробуйте позже.",
		})
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот школьного расписания. Здесь можно смотреть занятия на неделю "+
			"с учётом отмен, замен и переносов.\n\n"+
			"Доступные команды:\n"+
			"/timetable - Расписание на текущую неделю\n"+
			"/digest - Настройка ежедневной сводки\n"+
			"/bind - Привязать школьный идентификатор\n"+
			"/help - Справка",
		registeredUser.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/timetable - Расписание на текущую неделю\n" +
		"/digest - Включить или выключить утреннюю сводку\n" +
		"/bind - Привязать аккаунт к школьному идентификатору\n" +
		"/cancel - Отменить текущую операцию\n" +
		"/help - Показать эту справку\n\n" +
		"В расписании стрелки листают недели, кнопка \"Картинкой\" " +
		"присылает неделю одним изображением."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleTimetable обрабатывает команду /timetable
func (h *Handlers) HandleTimetable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Error(err), zap.Int64("telegram_id", telegramID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   common.ErrorMessage(err),
		})
		return
	}
	if user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   common.ErrorMessage(common.ErrUserNotFound),
		})
		return
	}
	if user.SchoolUserID == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   common.ErrorMessage(common.ErrUserNotBound),
		})
		return
	}

	todayRef := timetable.FormatRefDate(time.Now())
	tt, err := h.timetableService.ResolveTimetable(ctx, user.SchoolUserID, todayRef)
	if err != nil {
		h.logger.Error("Failed to resolve timetable",
			zap.Error(err),
			zap.String("school_user_id", user.SchoolUserID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Не удалось получить расписание. Попробуйте позже.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        formatting.FormatTimetable(tt),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: callbacks.TimetableScreenKeyboard(tt),
	})
}

// HandleDigest обрабатывает команду /digest
func (h *Handlers) HandleDigest(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.logger.Error("Failed to get user for digest settings", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   common.ErrorMessage(common.ErrUserNotFound),
		})
		return
	}

	text, kb := callbacks.DigestScreen(user.IsDigestEnabled)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
}

// HandleBind обрабатывает команду /bind - начало привязки школьного идентификатора
func (h *Handlers) HandleBind(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetState(telegramID, state.StateBindingSchoolID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "🔑 Отправьте школьный идентификатор, выданный администрацией.\n\n" +
			"Для отмены используйте /cancel",
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// Если нет активного состояния, игнорируем
	if currentState == state.StateNone {
		return
	}

	switch currentState {
	case state.StateBindingSchoolID:
		h.handleBindSchoolID(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}

// handleBindSchoolID обрабатывает ввод школьного идентификатора
func (h *Handlers) handleBindSchoolID(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	schoolID := strings.TrimSpace(update.Message.Text)

	if schoolID == "" || strings.ContainsAny(schoolID, " \t\n") {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: "❌ Идентификатор не должен содержать пробелов.\n\n" +
				"Попробуйте еще раз или отправьте /cancel для отмены.",
		})
		return
	}

	err := h.userService.BindSchoolID(ctx, telegramID, schoolID)
	if err != nil {
		h.logger.Error("Failed to bind school id",
			zap.Error(err),
			zap.Int64("telegram_id", telegramID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Не удалось привязать идентификатор. Попробуйте позже.",
		})
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "✅ Аккаунт привязан!\n\n" +
			"Теперь расписание доступно по команде /timetable",
	})
}
