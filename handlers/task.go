package handlers

import (
	"net/http"

	"crm_legal_go/middleware"
	"crm_legal_go/models"

	"github.com/labstack/echo/v4"
)

// taskListOptions reads ?include_closed and ?order (fecha_vencimiento_asc or prioridad)
func taskListOptions(c echo.Context) (bool, models.TaskOrder) {
	return queryBool(c, "include_closed"), models.TaskOrder(c.QueryParam("order"))
}

// GetTasksHandler lists the general tasks, those not attached to a case
func GetTasksHandler(c echo.Context) error {
	includeClosed, order := taskListOptions(c)
	tasks, err := middleware.GetStore(c).ListGeneralTasks(includeClosed, order)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, tasks)
}

// GetCaseTasksHandler lists the tasks attached to a case
func GetCaseTasksHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	includeClosed, order := taskListOptions(c)
	tasks, err := middleware.GetStore(c).ListTasksByCase(caseID, includeClosed, order)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, tasks)
}

func GetTaskHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	task, err := middleware.GetStore(c).GetTask(id)
	if err != nil {
		return respondError(c, err)
	}
	if task == nil {
		return respondNotFound(c, "tarea")
	}
	return respondData(c, http.StatusOK, task)
}

func CreateTaskHandler(c echo.Context) error {
	var input models.NewTask
	if err := bindAndValidate(c, &input); err != nil {
		return respondError(c, err)
	}
	if input.CaseID != nil {
		if handled, err := ensureCase(c, *input.CaseID); handled {
			return err
		}
	}
	id, err := middleware.GetStore(c).AddTask(input)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, id)
}

func UpdateTaskHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var update models.TaskUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return respondError(c, err)
	}
	if update.CaseID != nil {
		if handled, err := ensureCase(c, *update.CaseID); handled {
			return err
		}
	}
	ok, err := middleware.GetStore(c).UpdateTask(id, update)
	return respondChanged(c, ok, err, "tarea")
}

func DeleteTaskHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).DeleteTask(id)
	return respondChanged(c, ok, err, "tarea")
}
