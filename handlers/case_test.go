package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"crm_legal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseHandlers(t *testing.T) {
	store := setupTestStore(t)
	clientID, err := store.AddClient(models.Client{Name: "Juan Perez"})
	require.NoError(t, err)
	var caseID uint

	t.Run("Create", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/cases", jsonBody(t, map[string]interface{}{
			"client_id": clientID,
			"title":     "Perez c/ Gomez s/ daños",
			"court":     "Juzgado Civil 5",
		}))
		require.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		caseID = createdID(t, rec)

		created, err := store.GetCase(caseID)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultInactivityThresholdDays, created.InactivityThresholdDays)
		assert.True(t, created.InactivityEnabled)
	})

	t.Run("Create for unknown client", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/cases", jsonBody(t, map[string]interface{}{
			"client_id": 999,
			"title":     "Sin cliente",
		}))
		require.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Create with invalid threshold", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/cases", jsonBody(t, map[string]interface{}{
			"client_id":                 clientID,
			"title":                     "Umbral inválido",
			"inactivity_threshold_days": 0,
		}))
		require.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "inactivity_threshold_days")
	})

	t.Run("Get", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodGet, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, GetCaseHandler(c))
		var got models.Case
		decodeData(t, rec, &got)
		assert.Equal(t, "Juan Perez", got.ClientName)
		assert.Equal(t, "Juzgado Civil 5", got.Court)
	})

	t.Run("Update and folder", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPut, "/", jsonBody(t, map[string]string{"stage": "Prueba"}))
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, UpdateCaseHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, c, rec = setupEcho(store, http.MethodPut, "/", jsonBody(t, map[string]string{"folder_path": "/home/estudio/perez"}))
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, UpdateCaseFolderHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		got, err := store.GetCase(caseID)
		require.NoError(t, err)
		assert.Equal(t, "Prueba", got.Stage)
		assert.Equal(t, "/home/estudio/perez", got.FolderPath)
	})

	t.Run("Touch", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, TouchCaseHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, c, rec = setupEcho(store, http.MethodPost, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues("999")
		require.NoError(t, TouchCaseHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Delete keeps tasks", func(t *testing.T) {
		taskID, err := store.AddTask(models.NewTask{CaseID: &caseID, Description: "Contestar demanda"})
		require.NoError(t, err)

		_, c, rec := setupEcho(store, http.MethodDelete, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(caseID)))
		require.NoError(t, DeleteCaseHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		task, err := store.GetTask(taskID)
		require.NoError(t, err)
		require.NotNil(t, task)
		assert.Nil(t, task.CaseID)
	})
}

func TestCaseChildHandlers(t *testing.T) {
	store := setupTestStore(t)
	_, caseID := seedCase(t, store)
	caseParam := strconv.Itoa(int(caseID))

	t.Run("Activity lifecycle", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/activities", jsonBody(t, map[string]interface{}{
			"case_id":     caseID,
			"type":        "Escrito",
			"description": "Se presentó la demanda",
		}))
		require.NoError(t, CreateActivityHandler(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		activityID := strconv.Itoa(int(createdID(t, rec)))

		_, c, rec = setupEcho(store, http.MethodPut, "/", jsonBody(t, map[string]string{"description": "Se presentó la demanda con documental"}))
		c.SetParamNames("id")
		c.SetParamValues(activityID)
		require.NoError(t, UpdateActivityHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, c, rec = setupEcho(store, http.MethodGet, "/?order=desc", nil)
		c.SetParamNames("id")
		c.SetParamValues(caseParam)
		require.NoError(t, GetCaseActivitiesHandler(c))
		var activities []models.Activity
		decodeData(t, rec, &activities)
		require.Len(t, activities, 1)
		assert.Equal(t, "Se presentó la demanda con documental", activities[0].Description)

		_, c, rec = setupEcho(store, http.MethodDelete, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(activityID)
		require.NoError(t, DeleteActivityHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Activity requires type", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/activities", jsonBody(t, map[string]interface{}{
			"case_id":     caseID,
			"description": "Sin tipo",
		}))
		require.NoError(t, CreateActivityHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Activity for unknown case", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/activities", jsonBody(t, map[string]interface{}{
			"case_id":     999,
			"type":        "Nota",
			"description": "Huérfana",
		}))
		require.NoError(t, CreateActivityHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Party lifecycle", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/parties", jsonBody(t, map[string]interface{}{
			"case_id": caseID,
			"name":    "Gomez",
			"type":    "Demandado",
		}))
		require.NoError(t, CreatePartyHandler(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		partyID := strconv.Itoa(int(createdID(t, rec)))

		_, c, rec = setupEcho(store, http.MethodGet, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(partyID)
		require.NoError(t, GetPartyHandler(c))
		var party models.Party
		decodeData(t, rec, &party)
		assert.Equal(t, "Demandado", party.Type)

		_, c, rec = setupEcho(store, http.MethodGet, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(caseParam)
		require.NoError(t, GetCasePartiesHandler(c))
		var parties []models.Party
		decodeData(t, rec, &parties)
		assert.Len(t, parties, 1)

		_, c, rec = setupEcho(store, http.MethodDelete, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(partyID)
		require.NoError(t, DeletePartyHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Hearing lifecycle", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/hearings", jsonBody(t, map[string]interface{}{
			"case_id":     caseID,
			"date":        "2025-01-20",
			"time":        "09:30",
			"description": "Audiencia preliminar",
		}))
		require.NoError(t, CreateHearingHandler(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		hearingID := strconv.Itoa(int(createdID(t, rec)))

		_, c, rec = setupEcho(store, http.MethodGet, "/api/hearings?date=2025-01-20", nil)
		require.NoError(t, GetHearingsHandler(c))
		var hearings []models.Hearing
		decodeData(t, rec, &hearings)
		require.Len(t, hearings, 1)
		assert.Equal(t, "Perez c/ Gomez s/ daños", hearings[0].CaseTitle)

		_, c, rec = setupEcho(store, http.MethodGet, "/api/hearings/dates", nil)
		require.NoError(t, GetHearingDatesHandler(c))
		var dates []string
		decodeData(t, rec, &dates)
		assert.Equal(t, []string{"2025-01-20"}, dates)

		_, c, rec = setupEcho(store, http.MethodPut, "/", jsonBody(t, map[string]string{"time": "11:00"}))
		c.SetParamNames("id")
		c.SetParamValues(hearingID)
		require.NoError(t, UpdateHearingHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, c, rec = setupEcho(store, http.MethodGet, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(caseParam)
		require.NoError(t, GetCaseHearingsHandler(c))
		decodeData(t, rec, &hearings)
		require.Len(t, hearings, 1)
		assert.Equal(t, "11:00", hearings[0].Time)

		_, c, rec = setupEcho(store, http.MethodDelete, "/", nil)
		c.SetParamNames("id")
		c.SetParamValues(hearingID)
		require.NoError(t, DeleteHearingHandler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Hearing validation", func(t *testing.T) {
		_, c, rec := setupEcho(store, http.MethodPost, "/api/hearings", jsonBody(t, map[string]interface{}{
			"case_id":     caseID,
			"date":        "20/01/2025",
			"description": "Fecha mal escrita",
		}))
		require.NoError(t, CreateHearingHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "date")

		_, c, rec = setupEcho(store, http.MethodGet, "/api/hearings?date=mañana", nil)
		require.NoError(t, GetHearingsHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
