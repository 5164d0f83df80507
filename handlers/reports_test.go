package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"testing"

	"crm_legal_go/middleware"
	"crm_legal_go/models"
	"crm_legal_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestProfileHandlers(t *testing.T) {
	store := setupTestStore(t)

	t.Run("Empty profile", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodGet, "/api/profile", nil)
		require.NoError(t, GetProfileHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Save and read", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPut, "/api/profile", jsonBody(t, map[string]string{
			"attorney_name": "Dra. Ana Ruiz",
			"tax_id":        "27-12345678-9",
		}))
		require.NoError(t, UpdateProfileHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, c, rec = setupEcho(store, http.MethodGet, "/api/profile", nil)
		require.NoError(t, GetProfileHandler(c))
		var profile models.UserProfile
		decodeData(t, rec, &profile)
		assert.Equal(t, "Dra. Ana Ruiz", profile.AttorneyName)
		assert.Equal(t, "27-12345678-9", profile.TaxID)
	})

	t.Run("Invalid email", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPut, "/api/profile", jsonBody(t, map[string]string{"office_email": "no-es-email"}))
		require.NoError(t, UpdateProfileHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Nothing to save", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPut, "/api/profile", jsonBody(t, map[string]string{}))
		require.NoError(t, UpdateProfileHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRemindersHandler(t *testing.T) {
	store := setupTestStore(t)
	_, caseID := seedCase(t, store)

	_, err := store.AddTask(models.NewTask{CaseID: &caseID, Description: "Alegatos", DueDate: "2025-01-09", ReminderEnabled: true})
	require.NoError(t, err)
	_, err = store.AddHearing(models.NewHearing{CaseID: caseID, Date: "2025-01-10", Time: "10:00", Description: "Testimoniales", ReminderEnabled: true})
	require.NoError(t, err)

	_, c, rec := setupEcho(store, http.MethodGet, "/api/reminders", nil)
	require.NoError(t, GetRemindersHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var preview remindersPreview
	decodeData(t, rec, &preview)
	require.Len(t, preview.Tasks, 1)
	assert.Equal(t, "Alegatos", preview.Tasks[0].Description)
	require.Len(t, preview.Hearings, 1)
	assert.Empty(t, preview.IdleCases)
}

func TestExportHandler(t *testing.T) {
	store := setupTestStore(t)
	seedCase(t, store)

	_, c, rec := setupEcho(store, http.MethodGet, "/api/export", nil)
	require.NoError(t, ExportHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "crm_legal_20250108_100000.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(services.SheetClients)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Juan Perez", rows[1][1])
}

func TestGetCaseReportHandler(t *testing.T) {
	store := setupTestStore(t)
	_, caseID := seedCase(t, store)

	_, c, rec := setupEcho(store, http.MethodGet, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(caseID)))
	require.NoError(t, GetCaseReportHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Perez c/ Gomez s/ daños")

	_, c, rec = setupEcho(store, http.MethodGet, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, GetCaseReportHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBackupHandlers(t *testing.T) {
	store := setupTestStore(t)

	t.Run("Disabled", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/backups", nil)
		require.NoError(t, CreateBackupHandler(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("Run and list", func(t *testing.T) {
		backups := services.NewBackupService(store, services.NewLocalStorage(t.TempDir()), nil)

		_, c, rec := setupEcho(store, http.MethodPost, "/api/backups", nil)
		c.Set(middleware.ContextKeyBackups, backups)
		require.NoError(t, CreateBackupHandler(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		var result services.BackupResult
		decodeData(t, rec, &result)
		assert.Contains(t, result.Key, "backups/2025-01-08/")

		_, c, rec = setupEcho(store, http.MethodGet, "/api/backups", nil)
		c.Set(middleware.ContextKeyBackups, backups)
		require.NoError(t, GetBackupsHandler(c))
		var objects []services.StorageObject
		decodeData(t, rec, &objects)
		require.Len(t, objects, 1)
		assert.Equal(t, result.Key, objects[0].Key)
	})
}
