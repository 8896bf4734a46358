package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояние привязки к школьному идентификатору
	StateBindingSchoolID UserState = "binding_school_id"
)
