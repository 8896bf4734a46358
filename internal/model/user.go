package model

import "time"

type User struct {
	ID              int64     `json:"id"`
	TelegramID      int64     `json:"telegram_id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	LanguageCode    string    `json:"language_code"`
	SchoolUserID    string    `json:"school_user_id"`    // идентификатор пользователя в школьной системе
	IsDigestEnabled bool      `json:"is_digest_enabled"` // получать ежедневную сводку расписания
	CreatedAt       time.Time `json:"created_at"`
}
