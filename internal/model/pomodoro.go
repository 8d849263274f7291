package model

// PomodoroRecord is one focus session attached to a task. StartedAt and
// EndedAt are RFC 3339 timestamps; EndedAt stays empty while running.
type PomodoroRecord struct {
	ID        string `gorm:"primaryKey" json:"id"`
	TaskID    string `gorm:"index" json:"task_id"`
	StartedAt string `gorm:"index" json:"started_at"`
	EndedAt   string `json:"ended_at"`
	Duration  int    `gorm:"default:25" json:"duration"` // minutes
	Completed bool   `gorm:"default:false" json:"completed"`
}
