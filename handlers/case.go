package handlers

import (
	"net/http"

	"crm_legal_go/middleware"
	"crm_legal_go/models"

	"github.com/labstack/echo/v4"
)

type caseFolderRequest struct {
	FolderPath string `json:"folder_path"`
}

// GetCaseHandler returns one case with its client name
func GetCaseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	caseRecord, err := middleware.GetStore(c).GetCase(id)
	if err != nil {
		return respondError(c, err)
	}
	if caseRecord == nil {
		return respondNotFound(c, "caso")
	}
	return respondData(c, http.StatusOK, caseRecord)
}

// CreateCaseHandler opens a case for an existing client
func CreateCaseHandler(c echo.Context) error {
	var input models.NewCase
	if err := bindAndValidate(c, &input); err != nil {
		return respondError(c, err)
	}
	store := middleware.GetStore(c)
	client, err := store.GetClient(input.ClientID)
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return respondNotFound(c, "cliente")
	}
	id, err := store.AddCase(input)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, id)
}

// UpdateCaseHandler applies a partial update and records activity
func UpdateCaseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var update models.CaseUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).UpdateCase(id, update)
	return respondChanged(c, ok, err, "caso")
}

// UpdateCaseFolderHandler links the case to a folder on disk
func UpdateCaseFolderHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req caseFolderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).UpdateCaseFolder(id, req.FolderPath)
	return respondChanged(c, ok, err, "caso")
}

// TouchCaseHandler records activity on a case without changing it
func TouchCaseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).TouchCase(id)
	return respondChanged(c, ok, err, "caso")
}

// DeleteCaseHandler removes a case; its tasks are kept without a case
func DeleteCaseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := middleware.GetStore(c).DeleteCase(id)
	return respondChanged(c, ok, err, "caso")
}
