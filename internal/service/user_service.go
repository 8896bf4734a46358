package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует или обновляет пользователя
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.User, error) {
	// Проверяем существует ли пользователь
	existingUser, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	// Если пользователь уже существует, обновляем данные
	if existingUser != nil {
		existingUser.Username = username
		existingUser.FirstName = firstName
		existingUser.LastName = lastName
		existingUser.LanguageCode = languageCode

		err = s.userRepo.Update(ctx, existingUser)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}

		s.logger.Info("User updated",
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
		)

		return existingUser, nil
	}

	// Создаём нового пользователя. Привязка к школьному идентификатору
	// выполняется администратором, по умолчанию она пуста.
	user := &model.User{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		LanguageCode: languageCode,
	}

	err = s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// SetDigestEnabled включает или выключает ежедневную сводку расписания
func (s *UserService) SetDigestEnabled(ctx context.Context, telegramID int64, enabled bool) error {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return fmt.Errorf("user not found")
	}

	err = s.userRepo.SetDigestEnabled(ctx, user.ID, enabled)
	if err != nil {
		return fmt.Errorf("set digest enabled: %w", err)
	}

	s.logger.Info("Digest setting changed",
		zap.Int64("user_id", user.ID),
		zap.Bool("enabled", enabled),
	)

	return nil
}

// BindSchoolID привязывает Telegram-аккаунт к школьному идентификатору.
// Без привязки расписание пользователю недоступно.
func (s *UserService) BindSchoolID(ctx context.Context, telegramID int64, schoolUserID string) error {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return fmt.Errorf("user not found")
	}

	err = s.userRepo.SetSchoolUserID(ctx, user.ID, schoolUserID)
	if err != nil {
		return fmt.Errorf("bind school id: %w", err)
	}

	s.logger.Info("School ID bound",
		zap.Int64("user_id", user.ID),
		zap.String("school_user_id", schoolUserID),
	)

	return nil
}

// GetDigestRecipients получает пользователей для ежедневной сводки
func (s *UserService) GetDigestRecipients(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.GetDigestEnabled(ctx)
}
