package services

import (
	"fmt"
	"strings"

	"crm_legal_go/models"

	"gorm.io/gorm"
)

// Task reminders stop once the due date is more than this many days past
const taskReminderExpiryDays = 30

var (
	dueDateNullsLastSQL = "CASE WHEN tareas.fecha_vencimiento IS NULL THEN 1 ELSE 0 END"
	priorityRankSQL     = models.PriorityRankSQL("tareas.prioridad")
)

func taskOrderClause(order models.TaskOrder) string {
	switch order {
	case models.TaskOrderPriority:
		return fmt.Sprintf("%s ASC, %s, tareas.fecha_vencimiento ASC, tareas.id ASC", priorityRankSQL, dueDateNullsLastSQL)
	default:
		return fmt.Sprintf("%s, tareas.fecha_vencimiento ASC, %s ASC, tareas.id ASC", dueDateNullsLastSQL, priorityRankSQL)
	}
}

// AddTask creates a task, optionally attached to a case. A due date that
// cannot be parsed is logged and stored empty.
func (s *Store) AddTask(input models.NewTask) (uint, error) {
	if strings.TrimSpace(input.Description) == "" {
		return 0, s.fail("AddTask", validationError("task description is required"))
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return 0, s.fail("AddTask", validationError("unknown task priority %q", input.Priority))
	}
	if input.Status != "" && !input.Status.IsValid() {
		return 0, s.fail("AddTask", validationError("unknown task status %q", input.Status))
	}
	if input.ReminderDaysBefore != nil && *input.ReminderDaysBefore < 0 {
		return 0, s.fail("AddTask", validationError("reminder days before cannot be negative"))
	}

	task := models.Task{
		CaseID:               input.CaseID,
		Description:          input.Description,
		CreatedOn:            s.now().Format(DateTimeLayout),
		Priority:             models.TaskPriorityMedium,
		Status:               models.TaskStatusPending,
		Notes:                input.Notes,
		IsProceduralDeadline: input.IsProceduralDeadline,
		ReminderEnabled:      input.ReminderEnabled,
		ReminderDaysBefore:   models.DefaultTaskReminderDaysBefore,
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.ReminderDaysBefore != nil {
		task.ReminderDaysBefore = *input.ReminderDaysBefore
	}
	if input.DueDate != "" {
		due, err := NormalizeDueDate(input.DueDate)
		if err != nil {
			s.log.Warn("ignoring unparseable due date", "op", "AddTask", "due_date", input.DueDate, "error", err)
		} else {
			task.DueDate = &due
		}
	}

	err := s.transaction("AddTask", func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if task.CaseID != nil {
			return s.touchCase(tx, *task.CaseID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return task.ID, nil
}

// GetTask returns the task or nil when it does not exist
func (s *Store) GetTask(id uint) (*models.Task, error) {
	var task models.Task
	found, err := takeOne(s.db.Where("id = ?", id), &task)
	if err != nil {
		return nil, s.fail("GetTask", err)
	}
	if !found {
		return nil, nil
	}
	return &task, nil
}

// ListTasksByCase returns a case's tasks. Closed tasks are included only
// when includeClosed is set.
func (s *Store) ListTasksByCase(caseID uint, includeClosed bool, order models.TaskOrder) ([]models.Task, error) {
	query := s.db.Where("tareas.caso_id = ?", caseID)
	tasks, err := s.listTasks(query, includeClosed, order)
	if err != nil {
		return nil, s.fail("ListTasksByCase", err)
	}
	return tasks, nil
}

// ListGeneralTasks returns the tasks not attached to any case
func (s *Store) ListGeneralTasks(includeClosed bool, order models.TaskOrder) ([]models.Task, error) {
	query := s.db.Where("tareas.caso_id IS NULL")
	tasks, err := s.listTasks(query, includeClosed, order)
	if err != nil {
		return nil, s.fail("ListGeneralTasks", err)
	}
	return tasks, nil
}

func (s *Store) listTasks(query *gorm.DB, includeClosed bool, order models.TaskOrder) ([]models.Task, error) {
	if !includeClosed {
		query = query.Where("tareas.estado NOT IN ?", models.ClosedTaskStatuses())
	}
	var tasks []models.Task
	err := query.Order(taskOrderClause(order)).Find(&tasks).Error
	return tasks, err
}

// taskUpdateColumns builds the column map for a task update. An empty due
// date clears it; one that cannot be parsed is logged and left unchanged.
func (s *Store) taskUpdateColumns(id uint, update models.TaskUpdate) (map[string]interface{}, error) {
	if update.Description != nil && strings.TrimSpace(*update.Description) == "" {
		return nil, validationError("task description cannot be empty")
	}
	if update.Priority != nil && !update.Priority.IsValid() {
		return nil, validationError("unknown task priority %q", *update.Priority)
	}
	if update.Status != nil && !update.Status.IsValid() {
		return nil, validationError("unknown task status %q", *update.Status)
	}
	if update.ReminderDaysBefore != nil && *update.ReminderDaysBefore < 0 {
		return nil, validationError("reminder days before cannot be negative")
	}

	cols := update.Columns()
	if update.DueDate != nil {
		switch raw := strings.TrimSpace(*update.DueDate); raw {
		case "":
			cols["fecha_vencimiento"] = nil
		default:
			due, err := NormalizeDueDate(raw)
			if err != nil {
				s.log.Warn("keeping previous due date", "op", "UpdateTask", "task_id", id, "due_date", raw, "error", err)
			} else {
				cols["fecha_vencimiento"] = due
			}
		}
	}
	return cols, nil
}

// UpdateTask writes the supplied fields of a task. Moving a task to another
// case records activity on both cases.
func (s *Store) UpdateTask(id uint, update models.TaskUpdate) (bool, error) {
	cols, err := s.taskUpdateColumns(id, update)
	if err != nil {
		return false, s.fail("UpdateTask", err)
	}

	var found bool
	err = s.transaction("UpdateTask", func(tx *gorm.DB) error {
		caseID, exists, err := parentCaseID(tx, &models.Task{}, id)
		if err != nil || !exists {
			return err
		}
		found = true
		_, changed, err := updateRow(tx, &models.Task{}, id, cols)
		if err != nil || !changed {
			return err
		}
		if caseID != nil {
			if err := s.touchCase(tx, *caseID); err != nil {
				return err
			}
		}
		if update.CaseID != nil && (caseID == nil || *caseID != *update.CaseID) {
			return s.touchCase(tx, *update.CaseID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// DeleteTask removes a task
func (s *Store) DeleteTask(id uint) (bool, error) {
	return s.deleteChild("DeleteTask", &models.Task{}, id)
}

// ListTasksForReminder returns the open tasks whose reminder date has come,
// whose due date is at most thirty days past, and which were not notified today
func (s *Store) ListTasksForReminder() ([]models.Task, error) {
	today := s.today()
	var tasks []models.Task
	err := s.db.Model(&models.Task{}).
		Select("tareas.*, casos.caratula AS caso_caratula").
		Joins("LEFT JOIN casos ON tareas.caso_id = casos.id").
		Where("tareas.recordatorio_activo = 1").
		Where("tareas.estado NOT IN ?", models.ClosedTaskStatuses()).
		Where("tareas.fecha_vencimiento IS NOT NULL").
		Where("DATE(tareas.fecha_vencimiento, '-' || tareas.recordatorio_dias_antes || ' day') <= ?", today).
		Where("DATE(tareas.fecha_vencimiento) >= DATE(?, ?)", today, dayOffset(-taskReminderExpiryDays)).
		Where("(tareas.fecha_ultima_notificacion IS NULL OR DATE(tareas.fecha_ultima_notificacion) != ?)", today).
		Order(fmt.Sprintf("tareas.fecha_vencimiento ASC, %s ASC, tareas.id ASC", priorityRankSQL)).
		Scan(&tasks).Error
	if err != nil {
		return nil, s.fail("ListTasksForReminder", err)
	}
	return tasks, nil
}

// MarkTaskNotified records that a reminder went out for the task today. It is
// an acknowledgment and does not count as case activity.
func (s *Store) MarkTaskNotified(id uint) (bool, error) {
	var found bool
	err := s.transaction("MarkTaskNotified", func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).Where("id = ?", id).
			Update("fecha_ultima_notificacion", s.now().Format(DateTimeLayout))
		found = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
