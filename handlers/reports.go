package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"crm_legal_go/middleware"
	"crm_legal_go/models"
	"crm_legal_go/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type remindersPreview struct {
	Tasks     []models.Task    `json:"tasks"`
	Hearings  []models.Hearing `json:"hearings"`
	IdleCases []models.Case    `json:"idle_cases"`
}

// GetRemindersHandler shows what the reminder queries select right now,
// without sending or acknowledging anything
func GetRemindersHandler(c echo.Context) error {
	store := middleware.GetStore(c)
	var preview remindersPreview
	var err error
	if preview.Tasks, err = store.ListTasksForReminder(); err != nil {
		return respondError(c, err)
	}
	if preview.Hearings, err = store.ListHearingsWithReminder(); err != nil {
		return respondError(c, err)
	}
	if preview.IdleCases, err = store.ListCasesForInactivityCheck(); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, preview)
}

// ExportHandler downloads the whole practice as a workbook
func ExportHandler(c echo.Context) error {
	store := middleware.GetStore(c)
	buf, err := services.ExportWorkbook(store)
	if err != nil {
		store.Logger().Error("export failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "no se pudo generar la planilla"})
	}
	filename := fmt.Sprintf("crm_legal_%s.xlsx", store.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetCaseReportHandler renders the printable case summary as HTML
func GetCaseReportHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	html, err := services.BuildCaseReportHTML(middleware.GetStore(c), caseID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondNotFound(c, "caso")
		}
		return respondError(c, err)
	}
	return c.HTML(http.StatusOK, html)
}

// GetCaseReportPDFHandler prints the case summary with headless Chrome
func GetCaseReportPDFHandler(c echo.Context) error {
	caseID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	opts := services.DefaultPDFOptions()
	opts.ChromePath = middleware.GetConfig(c).ChromePath

	pdf, err := services.GenerateCaseReportPDF(c.Request().Context(), middleware.GetStore(c), caseID, opts)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return respondNotFound(c, "caso")
		}
		if errors.Is(err, services.ErrStore) {
			return respondError(c, err)
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "no se pudo generar el PDF"})
	}
	filename := fmt.Sprintf("caso_%d_%s.pdf", caseID, middleware.GetStore(c).Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// CreateBackupHandler takes a backup immediately
func CreateBackupHandler(c echo.Context) error {
	backups := middleware.GetBackupService(c)
	if backups == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "respaldos deshabilitados"})
	}
	result, err := backups.Run(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "no se pudo crear el respaldo"})
	}
	return respondData(c, http.StatusCreated, result)
}

// GetBackupsHandler lists stored backups
func GetBackupsHandler(c echo.Context) error {
	backups := middleware.GetBackupService(c)
	if backups == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "respaldos deshabilitados"})
	}
	objects, err := backups.List(c.Request().Context())
	if err != nil {
		middleware.GetStore(c).Logger().Error("listing backups failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "no se pudieron listar los respaldos"})
	}
	return respondData(c, http.StatusOK, objects)
}
