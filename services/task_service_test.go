package services

import (
	"testing"
	"time"

	"crm_legal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTask(t *testing.T) {
	store, clock := setupStoreTest(t)
	_, caseID := seedCase(t, store)

	tests := []struct {
		name    string
		dueDate string
		want    *string
	}{
		{name: "Date only", dueDate: "2025-01-10", want: strPtr("2025-01-10")},
		{name: "Date with time", dueDate: "2025-01-10 18:30:00", want: strPtr("2025-01-10")},
		{name: "Unparseable stored empty", dueDate: "10/01/2025", want: nil},
		{name: "No due date", dueDate: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := store.AddTask(models.NewTask{CaseID: uintPtr(caseID), Description: tt.name, DueDate: tt.dueDate})
			require.NoError(t, err)

			task, err := store.GetTask(id)
			require.NoError(t, err)
			require.NotNil(t, task)
			assert.Equal(t, tt.want, task.DueDate)
			assert.Equal(t, models.TaskPriorityMedium, task.Priority)
			assert.Equal(t, models.TaskStatusPending, task.Status)
			assert.Equal(t, models.DefaultTaskReminderDaysBefore, task.ReminderDaysBefore)
			assert.Equal(t, clock.Now().Format(DateTimeLayout), task.CreatedOn)
		})
	}

	t.Run("Unknown priority rejected", func(t *testing.T) {
		_, err := store.AddTask(models.NewTask{Description: "x", Priority: "Urgentisima"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Negative reminder lead rejected", func(t *testing.T) {
		_, err := store.AddTask(models.NewTask{Description: "x", DueDate: "2025-01-10", ReminderEnabled: true, ReminderDaysBefore: intPtr(-1)})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateTaskIsPartial(t *testing.T) {
	store, _ := setupStoreTest(t)
	_, caseID := seedCase(t, store)

	id, err := store.AddTask(models.NewTask{
		CaseID:             uintPtr(caseID),
		Description:        "Presentar alegato",
		DueDate:            "2025-01-15",
		Priority:           models.TaskPriorityHigh,
		Notes:              "ver jurisprudencia",
		ReminderEnabled:    true,
		ReminderDaysBefore: intPtr(3),
	})
	require.NoError(t, err)

	t.Run("Status only", func(t *testing.T) {
		ok, err := store.UpdateTask(id, models.TaskUpdate{Status: statusPtr(models.TaskStatusInProgress)})
		require.NoError(t, err)
		assert.True(t, ok)

		task, err := store.GetTask(id)
		require.NoError(t, err)
		assert.Equal(t, models.TaskStatusInProgress, task.Status)
		assert.Equal(t, "Presentar alegato", task.Description)
		assert.Equal(t, strPtr("2025-01-15"), task.DueDate)
		assert.Equal(t, models.TaskPriorityHigh, task.Priority)
		assert.Equal(t, "ver jurisprudencia", task.Notes)
		assert.True(t, task.ReminderEnabled)
		assert.Equal(t, 3, task.ReminderDaysBefore)
	})

	t.Run("Unparseable due date is ignored", func(t *testing.T) {
		ok, err := store.UpdateTask(id, models.TaskUpdate{DueDate: strPtr("mañana"), Notes: strPtr("actualizado")})
		require.NoError(t, err)
		assert.True(t, ok)

		task, err := store.GetTask(id)
		require.NoError(t, err)
		assert.Equal(t, strPtr("2025-01-15"), task.DueDate)
		assert.Equal(t, "actualizado", task.Notes)
	})

	t.Run("Empty due date clears it", func(t *testing.T) {
		ok, err := store.UpdateTask(id, models.TaskUpdate{DueDate: strPtr("")})
		require.NoError(t, err)
		assert.True(t, ok)

		task, err := store.GetTask(id)
		require.NoError(t, err)
		assert.Nil(t, task.DueDate)
	})

	t.Run("Negative reminder lead rejected", func(t *testing.T) {
		ok, err := store.UpdateTask(id, models.TaskUpdate{ReminderDaysBefore: intPtr(-1)})
		assert.ErrorIs(t, err, ErrValidation)
		assert.False(t, ok)

		task, err := store.GetTask(id)
		require.NoError(t, err)
		assert.Equal(t, 3, task.ReminderDaysBefore)
	})

	t.Run("Missing task", func(t *testing.T) {
		ok, err := store.UpdateTask(9999, models.TaskUpdate{Notes: strPtr("x")})
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func TestListTasksByCase(t *testing.T) {
	store, _ := setupStoreTest(t)
	_, caseID := seedCase(t, store)

	add := func(desc, due string, priority models.TaskPriority, status models.TaskStatus) {
		_, err := store.AddTask(models.NewTask{CaseID: uintPtr(caseID), Description: desc, DueDate: due, Priority: priority, Status: status})
		require.NoError(t, err)
	}
	add("sin fecha alta", "", models.TaskPriorityHigh, "")
	add("baja temprana", "2025-01-10", models.TaskPriorityLow, "")
	add("alta temprana", "2025-01-10", models.TaskPriorityHigh, "")
	add("media tardia", "2025-02-01", models.TaskPriorityMedium, "")
	add("completada", "2025-01-01", models.TaskPriorityHigh, models.TaskStatusDone)

	descriptions := func(tasks []models.Task) []string {
		out := make([]string, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.Description)
		}
		return out
	}

	t.Run("Due date order, undated last", func(t *testing.T) {
		tasks, err := store.ListTasksByCase(caseID, false, models.TaskOrderDueDate)
		require.NoError(t, err)
		assert.Equal(t, []string{"alta temprana", "baja temprana", "media tardia", "sin fecha alta"}, descriptions(tasks))
	})

	t.Run("Priority order", func(t *testing.T) {
		tasks, err := store.ListTasksByCase(caseID, false, models.TaskOrderPriority)
		require.NoError(t, err)
		assert.Equal(t, []string{"alta temprana", "sin fecha alta", "media tardia", "baja temprana"}, descriptions(tasks))
	})

	t.Run("Include closed", func(t *testing.T) {
		tasks, err := store.ListTasksByCase(caseID, true, models.TaskOrderDueDate)
		require.NoError(t, err)
		assert.Len(t, tasks, 5)
		assert.Equal(t, "completada", tasks[0].Description)
	})
}

func TestTaskReminders(t *testing.T) {
	store, clock := setupStoreTest(t)
	_, caseID := seedCase(t, store)

	id, err := store.AddTask(models.NewTask{
		CaseID:             uintPtr(caseID),
		Description:        "Vence plazo de contestacion",
		DueDate:            "2025-01-10",
		ReminderEnabled:    true,
		ReminderDaysBefore: intPtr(2),
	})
	require.NoError(t, err)

	// Not due for a reminder, or excluded for other reasons
	_, err = store.AddTask(models.NewTask{Description: "sin recordatorio", DueDate: "2025-01-09"})
	require.NoError(t, err)
	_, err = store.AddTask(models.NewTask{Description: "cerrada", DueDate: "2025-01-09", ReminderEnabled: true, Status: models.TaskStatusCancelled})
	require.NoError(t, err)
	_, err = store.AddTask(models.NewTask{Description: "vencida hace mucho", DueDate: "2024-12-01", ReminderEnabled: true})
	require.NoError(t, err)

	reminderIDs := func() []uint {
		tasks, err := store.ListTasksForReminder()
		require.NoError(t, err)
		ids := make([]uint, 0, len(tasks))
		for _, task := range tasks {
			ids = append(ids, task.ID)
			assert.Equal(t, "Perez c/ Gomez s/ daños", task.CaseTitle)
		}
		return ids
	}

	t.Run("Too early", func(t *testing.T) {
		clock.now = time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
		assert.Empty(t, reminderIDs())
	})

	t.Run("Reminder day", func(t *testing.T) {
		clock.now = time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, []uint{id}, reminderIDs())
	})

	t.Run("Not repeated the same day", func(t *testing.T) {
		ok, err := store.MarkTaskNotified(id)
		require.NoError(t, err)
		assert.True(t, ok)

		clock.Advance(6 * time.Hour)
		assert.Empty(t, reminderIDs())
	})

	t.Run("Repeated the next day", func(t *testing.T) {
		clock.now = time.Date(2025, 1, 9, 8, 0, 0, 0, time.UTC)
		assert.Equal(t, []uint{id}, reminderIDs())
	})

	t.Run("Mark missing task", func(t *testing.T) {
		ok, err := store.MarkTaskNotified(9999)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestTaskReminderExpiry(t *testing.T) {
	store, _ := setupStoreTest(t)

	// Clock is 2025-01-08: 2024-12-09 is thirty days back, 2024-12-08 thirty-one
	lastDay, err := store.AddTask(models.NewTask{Description: "vencida hace 30 dias", DueDate: "2024-12-09", ReminderEnabled: true})
	require.NoError(t, err)
	_, err = store.AddTask(models.NewTask{Description: "vencida hace 31 dias", DueDate: "2024-12-08", ReminderEnabled: true})
	require.NoError(t, err)

	tasks, err := store.ListTasksForReminder()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, lastDay, tasks[0].ID)
}

func TestDeleteTaskTouchesCase(t *testing.T) {
	store, clock := setupStoreTest(t)
	_, caseID := seedCase(t, store)

	id, err := store.AddTask(models.NewTask{CaseID: uintPtr(caseID), Description: "borrar"})
	require.NoError(t, err)
	clock.Advance(time.Hour)

	ok, err := store.DeleteTask(id)
	require.NoError(t, err)
	assert.True(t, ok)

	c, err := store.GetCase(caseID)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Unix(), c.LastActivityTimestamp)
}
