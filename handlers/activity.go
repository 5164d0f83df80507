package handlers

import (
	"net/http"

	"crm_legal_go/middleware"
	"crm_legal_go/models"

	"github.com/labstack/echo/v4"
)

// GetCaseActivitiesHandler lists the activity log of a case. ?order=desc
// returns the newest entries first.
func GetCaseActivitiesHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	activities, err := middleware.GetStore(c).ListActivities(caseID, c.QueryParam("order") == "desc")
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, activities)
}

func GetActivityHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	activity, err := middleware.GetStore(c).GetActivity(id)
	if err != nil {
		return respondError(c, err)
	}
	if activity == nil {
		return respondNotFound(c, "actividad")
	}
	return respondData(c, http.StatusOK, activity)
}

// CreateActivityHandler appends an entry to a case's log
func CreateActivityHandler(c echo.Context) error {
	var activity models.Activity
	if err := bindAndValidate(c, &activity); err != nil {
		return respondError(c, err)
	}
	if handled, err := ensureCase(c, activity.CaseID); handled {
		return err
	}
	activity.ID = 0
	id, err := middleware.GetStore(c).AddActivity(activity)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, id)
}

func UpdateActivityHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var update models.ActivityUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).UpdateActivity(id, update)
	return respondChanged(c, ok, err, "actividad")
}

func DeleteActivityHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).DeleteActivity(id)
	return respondChanged(c, ok, err, "actividad")
}
