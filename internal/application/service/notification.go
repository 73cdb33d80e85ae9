package service

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is the short toast message the wizard shows after an action.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

func Success(msg string) *Notification { return &Notification{Level: LevelSuccess, Message: msg} }
func Info(msg string) *Notification    { return &Notification{Level: LevelInfo, Message: msg} }
