package handlers

import (
	"net/http"

	"crm_legal_go/middleware"
	"crm_legal_go/models"
	"crm_legal_go/services"

	"github.com/labstack/echo/v4"
)

// GetHearingsHandler lists the hearings of one day (?date=YYYY-MM-DD)
func GetHearingsHandler(c echo.Context) error {
	date := c.QueryParam("date")
	if _, err := services.ParseDate(date); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "date debe tener el formato 2006-01-02"})
	}
	hearings, err := middleware.GetStore(c).ListHearingsByDate(date)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, hearings)
}

// GetHearingDatesHandler lists the distinct days with hearings, for the calendar
func GetHearingDatesHandler(c echo.Context) error {
	dates, err := middleware.GetStore(c).ListHearingDates()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, dates)
}

// GetCaseHearingsHandler lists the hearings of a case chronologically
func GetCaseHearingsHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	hearings, err := middleware.GetStore(c).ListHearingsByCase(caseID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, hearings)
}

func GetHearingHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	hearing, err := middleware.GetStore(c).GetHearing(id)
	if err != nil {
		return respondError(c, err)
	}
	if hearing == nil {
		return respondNotFound(c, "audiencia")
	}
	return respondData(c, http.StatusOK, hearing)
}

func CreateHearingHandler(c echo.Context) error {
	var input models.NewHearing
	if err := bindAndValidate(c, &input); err != nil {
		return respondError(c, err)
	}
	if handled, err := ensureCase(c, input.CaseID); handled {
		return err
	}
	id, err := middleware.GetStore(c).AddHearing(input)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, id)
}

func UpdateHearingHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var update models.HearingUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).UpdateHearing(id, update)
	return respondChanged(c, ok, err, "audiencia")
}

func DeleteHearingHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).DeleteHearing(id)
	return respondChanged(c, ok, err, "audiencia")
}
