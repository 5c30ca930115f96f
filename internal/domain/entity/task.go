package entity

import "time"

// Prioridades de tarea.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// Estados de tarea.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task tarea de seguimiento asociada a un lead.
type Task struct {
	ID          string
	LeadID      string
	UserID      string
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SetStatus cambia el estado manteniendo CompletedAt coherente:
// se fija al pasar a completed y se limpia al salir de él.
func (t *Task) SetStatus(status string, now time.Time) {
	if status == TaskStatusCompleted && t.Status != TaskStatusCompleted {
		t.CompletedAt = &now
	}
	if status != TaskStatusCompleted {
		t.CompletedAt = nil
	}
	t.Status = status
}

// IsValidTaskPriority indica si p es una prioridad reconocida.
func IsValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// IsValidTaskStatus indica si s es un estado reconocido.
func IsValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}
