package models

import (
	"fmt"
	"strings"
)

// TaskPriority is the urgency of a task
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "Alta"
	TaskPriorityMedium TaskPriority = "Media"
	TaskPriorityLow    TaskPriority = "Baja"
)

// taskPriorityRanks defines sort order; unknown priorities rank last
var taskPriorityRanks = []TaskPriority{TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow}

// Rank returns 1 for Alta, 2 for Media, 3 for Baja and 4 for anything else
func (p TaskPriority) Rank() int {
	for i, known := range taskPriorityRanks {
		if p == known {
			return i + 1
		}
	}
	return len(taskPriorityRanks) + 1
}

// IsValid reports whether p is one of the known priorities
func (p TaskPriority) IsValid() bool {
	return p.Rank() <= len(taskPriorityRanks)
}

// PriorityRankSQL returns a CASE expression ranking column the same way Rank does
func PriorityRankSQL(column string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CASE %s", column)
	for _, p := range taskPriorityRanks {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END", len(taskPriorityRanks)+1)
	return b.String()
}

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pendiente"
	TaskStatusInProgress TaskStatus = "En Progreso"
	TaskStatusDone       TaskStatus = "Completada"
	TaskStatusCancelled  TaskStatus = "Cancelada"
)

// IsValid reports whether s is one of the known statuses
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}

// IsClosed reports whether the task no longer needs attention
func (s TaskStatus) IsClosed() bool {
	return s == TaskStatusDone || s == TaskStatusCancelled
}

// ClosedTaskStatuses lists the statuses excluded from open-task queries
func ClosedTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusDone, TaskStatusCancelled}
}

// TaskOrder selects the ordering of task listings
type TaskOrder string

const (
	// TaskOrderDueDate sorts by due date (undated last) then priority
	TaskOrderDueDate TaskOrder = "fecha_vencimiento_asc"
	// TaskOrderPriority sorts by priority then due date
	TaskOrderPriority TaskOrder = "prioridad"
)

// DefaultTaskReminderDaysBefore is the lead time used when none is given
const DefaultTaskReminderDaysBefore = 1

// Task is a to-do item, optionally attached to a case. It survives the
// deletion of its case with CaseID set to nil.
type Task struct {
	ID                   uint         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseID               *uint        `gorm:"column:caso_id" json:"case_id"`
	Description          string       `gorm:"column:descripcion;not null" json:"description"`
	CreatedOn            string       `gorm:"column:fecha_creacion" json:"created_on"`  // YYYY-MM-DD HH:MM:SS
	DueDate              *string      `gorm:"column:fecha_vencimiento" json:"due_date"` // YYYY-MM-DD
	Priority             TaskPriority `gorm:"column:prioridad" json:"priority"`
	Status               TaskStatus   `gorm:"column:estado" json:"status"`
	Notes                string       `gorm:"column:notas" json:"notes"`
	IsProceduralDeadline bool         `gorm:"column:es_plazo_procesal" json:"is_procedural_deadline"`
	ReminderEnabled      bool         `gorm:"column:recordatorio_activo" json:"reminder_enabled"`
	ReminderDaysBefore   int          `gorm:"column:recordatorio_dias_antes" json:"reminder_days_before"`
	LastNotifiedAt       *string      `gorm:"column:fecha_ultima_notificacion" json:"last_notified_at,omitempty"`

	// Filled by queries joining casos
	CaseTitle string `gorm:"column:caso_caratula;->" json:"case_title,omitempty"`
}

// TableName specifies the table name for Task model
func (Task) TableName() string {
	return "tareas"
}

// NewTask holds the input for creating a task. DueDate accepts YYYY-MM-DD
// or YYYY-MM-DD HH:MM:SS; empty means no due date.
type NewTask struct {
	CaseID               *uint        `json:"case_id,omitempty"`
	Description          string       `json:"description" validate:"required"`
	DueDate              string       `json:"due_date"`
	Priority             TaskPriority `json:"priority"`
	Status               TaskStatus   `json:"status"`
	Notes                string       `json:"notes"`
	IsProceduralDeadline bool         `json:"is_procedural_deadline"`
	ReminderEnabled      bool         `json:"reminder_enabled"`
	ReminderDaysBefore   *int         `json:"reminder_days_before,omitempty" validate:"omitempty,min=0"`
}

// TaskUpdate carries the fields to change; nil fields are left untouched.
// A non-nil empty DueDate clears the due date.
type TaskUpdate struct {
	CaseID               *uint         `json:"case_id,omitempty"`
	Description          *string       `json:"description,omitempty"`
	DueDate              *string       `json:"due_date,omitempty"`
	Priority             *TaskPriority `json:"priority,omitempty"`
	Status               *TaskStatus   `json:"status,omitempty"`
	Notes                *string       `json:"notes,omitempty"`
	IsProceduralDeadline *bool         `json:"is_procedural_deadline,omitempty"`
	ReminderEnabled      *bool         `json:"reminder_enabled,omitempty"`
	ReminderDaysBefore   *int          `json:"reminder_days_before,omitempty" validate:"omitempty,min=0"`
}

// Columns returns the column/value pairs to write, excluding the due date,
// which needs normalizing by the caller
func (u TaskUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.CaseID != nil {
		cols["caso_id"] = *u.CaseID
	}
	setString(cols, "descripcion", u.Description)
	if u.Priority != nil {
		cols["prioridad"] = string(*u.Priority)
	}
	if u.Status != nil {
		cols["estado"] = string(*u.Status)
	}
	setString(cols, "notas", u.Notes)
	setBool(cols, "es_plazo_procesal", u.IsProceduralDeadline)
	setBool(cols, "recordatorio_activo", u.ReminderEnabled)
	setInt(cols, "recordatorio_dias_antes", u.ReminderDaysBefore)
	return cols
}
