package model

import "time"

// Setting is one key-value settings row; Value holds a JSON-encoded value.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings is the typed view over the settings table the UI works with.
type Settings struct {
	PomodoroWork      int    `json:"pomodoro_work"`
	PomodoroBreak     int    `json:"pomodoro_break"`
	PomodoroLongBreak int    `json:"pomodoro_long_break"`
	Theme             string `json:"theme"`
	DefaultView       string `json:"default_view"`
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{
		PomodoroWork:      25,
		PomodoroBreak:     5,
		PomodoroLongBreak: 15,
		Theme:             "cute",
		DefaultView:       "list",
	}
}
