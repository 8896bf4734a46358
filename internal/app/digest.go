package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// DigestJob рассылает подписанным пользователям занятия на день
type DigestJob struct {
	userService      *service.UserService
	timetableService *service.TimetableService
	bot              *bot.Bot
	hour             int
	logger           *zap.Logger
	stopChan         chan struct{}
}

// NewDigestJob создаёт задачу ежедневной сводки
func NewDigestJob(
	userService *service.UserService,
	timetableService *service.TimetableService,
	b *bot.Bot,
	hour int,
	logger *zap.Logger,
) *DigestJob {
	return &DigestJob{
		userService:      userService,
		timetableService: timetableService,
		bot:              b,
		hour:             hour,
		logger:           logger,
		stopChan:         make(chan struct{}),
	}
}

// Start запускает фоновую рассылку
func (j *DigestJob) Start(ctx context.Context) {
	j.logger.Info("Starting daily digest job", zap.Int("hour", j.hour))
	go j.run(ctx)
}

// Stop останавливает рассылку
func (j *DigestJob) Stop() {
	j.logger.Info("Stopping daily digest job")
	close(j.stopChan)
}

func (j *DigestJob) run(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(j.nextRun(time.Now())))

		select {
		case <-timer.C:
			j.sendDigests(ctx)
		case <-j.stopChan:
			timer.Stop()
			j.logger.Info("Daily digest job stopped")
			return
		case <-ctx.Done():
			timer.Stop()
			j.logger.Info("Daily digest job cancelled")
			return
		}
	}
}

// nextRun возвращает ближайший момент рассылки после now
func (j *DigestJob) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// sendDigests отправляет сводку всем подписанным пользователям
func (j *DigestJob) sendDigests(ctx context.Context) {
	j.logger.Info("Sending daily digests")

	recipients, err := j.userService.GetDigestRecipients(ctx)
	if err != nil {
		j.logger.Error("Failed to get digest recipients", zap.Error(err))
		return
	}

	today := time.Now()
	todayRef := timetable.FormatRefDate(today)
	sent := 0

	for _, user := range recipients {
		tt, err := j.timetableService.ResolveTimetable(ctx, user.SchoolUserID, todayRef)
		if err != nil {
			j.logger.Error("Failed to resolve timetable for digest",
				zap.Error(err),
				zap.Int64("user_id", user.ID),
				zap.String("school_user_id", user.SchoolUserID))
			continue
		}

		_, err = j.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    user.TelegramID,
			Text:      formatting.FormatDailyDigest(tt, today),
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			j.logger.Error("Failed to send digest",
				zap.Error(err),
				zap.Int64("telegram_id", user.TelegramID))
			continue
		}
		sent++
	}

	j.logger.Info("Daily digests sent",
		zap.Int("recipients", len(recipients)),
		zap.Int("sent", sent))
}
