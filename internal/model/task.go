package model

import (
	"time"

	"github.com/xrjjing/moo-todo/internal/recurrence"
)

// Task statuses.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidStatuses lists the accepted task statuses.
var ValidStatuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted}

// ValidPriorities lists the accepted task priorities.
var ValidPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ValidQuadrants lists the Eisenhower quadrants (empty = unassigned).
var ValidQuadrants = []string{"q1", "q2", "q3", "q4"}

// Task represents a single item in the planner. A task with a non-nil
// Recurrence is a template: the due pass materializes dated occurrence
// copies from it, linked back via ParentTaskID.
type Task struct {
	ID            string           `gorm:"primaryKey" json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Status        string           `gorm:"index;default:not_started" json:"status"`
	Priority      string           `gorm:"default:medium" json:"priority"`
	Quadrant      string           `json:"quadrant"`
	CategoryID    string           `gorm:"index" json:"category_id"`
	DueDate       string           `gorm:"index" json:"due_date"` // YYYY-MM-DD, empty = none
	Tags          []string         `gorm:"serializer:json" json:"tags"`
	Recurrence    *recurrence.Rule `gorm:"serializer:json" json:"recurrence,omitempty"`
	ParentTaskID  string           `gorm:"index" json:"parent_task_id"`
	PomodoroCount int              `json:"pomodoro_count"`
	OrderIndex    int              `gorm:"index" json:"order"`
	CompletedAt   string           `json:"completed_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Subtasks      []Subtask        `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"subtasks"`
}

// Subtask is a checklist entry under a task.
type Subtask struct {
	ID         string `gorm:"primaryKey" json:"id"`
	TaskID     string `gorm:"index" json:"task_id"`
	Title      string `json:"title"`
	Completed  bool   `gorm:"default:false" json:"completed"`
	OrderIndex int    `json:"order"`
}
