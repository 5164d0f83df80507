package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"crm_legal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportCase(t *testing.T, store *Store) uint {
	t.Helper()
	clientID, err := store.AddClient(models.Client{Name: "María López"})
	require.NoError(t, err)
	caseID, err := store.AddCase(models.NewCase{
		ClientID:   clientID,
		Title:      "López c/ Banco s/ cobro",
		FileNumber: "4521",
		Year:       "2024",
		Court:      "Juzgado Civil 3",
		Notes:      "Primera línea\n<script>alert(1)</script><b>importante</b>",
	})
	require.NoError(t, err)

	_, err = store.AddParty(models.Party{CaseID: caseID, Name: "Banco Sur", Type: "Demandado"})
	require.NoError(t, err)
	_, err = store.AddHearing(models.NewHearing{CaseID: caseID, Date: "2025-03-10", Time: "11:00", Description: "Vista de causa"})
	require.NoError(t, err)
	_, err = store.AddTask(models.NewTask{CaseID: uintPtr(caseID), Description: "Ofrecer prueba", DueDate: "2025-02-01", IsProceduralDeadline: true})
	require.NoError(t, err)
	_, err = store.AddActivity(models.Activity{CaseID: caseID, Type: "Escrito", Description: "Demanda presentada"})
	require.NoError(t, err)
	tagID, err := store.AddTag("Bancario")
	require.NoError(t, err)
	require.NoError(t, store.AssignTagToCase(caseID, tagID))
	return caseID
}

func TestBuildCaseReport(t *testing.T) {
	store, _ := setupStoreTest(t)
	caseID := seedReportCase(t, store)

	report, err := BuildCaseReport(store, caseID)
	require.NoError(t, err)
	assert.Equal(t, "María López", report.Case.ClientName)
	assert.Len(t, report.Parties, 1)
	assert.Len(t, report.Hearings, 1)
	assert.Len(t, report.Tasks, 1)
	assert.Len(t, report.Activities, 1)
	require.Len(t, report.Tags, 1)
	assert.Equal(t, "bancario", report.Tags[0].Name)
	assert.Equal(t, store.Now(), report.GeneratedAt)
}

func TestBuildCaseReportNotFound(t *testing.T) {
	store, _ := setupStoreTest(t)

	_, err := BuildCaseReport(store, 404)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBuildCaseReportHTML(t *testing.T) {
	store, _ := setupStoreTest(t)
	caseID := seedReportCase(t, store)

	_, err := store.SaveProfile(models.ProfileUpdate{AttorneyName: strPtr("Dra. Ana Ruiz"), ProvincialRegistration: strPtr("T123")})
	require.NoError(t, err)

	html, err := BuildCaseReportHTML(store, caseID)
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "López c/ Banco s/ cobro")
	assert.Contains(t, html, "4521/2024")
	assert.Contains(t, html, "Banco Sur")
	assert.Contains(t, html, "Vista de causa")
	assert.Contains(t, html, "Ofrecer prueba (plazo procesal)")
	assert.Contains(t, html, "2025-02-01")
	assert.Contains(t, html, "Demanda presentada")
	assert.Contains(t, html, "bancario")
	assert.Contains(t, html, "Dra. Ana Ruiz - Mat. T123")
	assert.Contains(t, html, "Generado el 08/01/2025 10:00")

	t.Run("Notes are sanitized", func(t *testing.T) {
		assert.Contains(t, html, "Primera línea<br")
		assert.Contains(t, html, "<b>importante</b>")
		assert.NotContains(t, html, "<script>")
		assert.NotContains(t, html, "alert(1)")
	})
}

func TestBuildCaseReportHTMLEmptySections(t *testing.T) {
	store, _ := setupStoreTest(t)
	_, caseID := seedCase(t, store)

	html, err := BuildCaseReportHTML(store, caseID)
	require.NoError(t, err)
	assert.Contains(t, html, "Sin partes cargadas.")
	assert.Contains(t, html, "Sin audiencias.")
	assert.Contains(t, html, "Sin tareas.")
	assert.Contains(t, html, "Sin actividad registrada.")
	assert.NotContains(t, html, "<h2>Notas</h2>")
}

func TestGenerateCaseReportPDFSmoke(t *testing.T) {
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		t.Skip("Skipping PDF generation test: CHROME_PATH not set")
	}
	store, _ := setupStoreTest(t)
	caseID := seedReportCase(t, store)

	opts := DefaultPDFOptions()
	opts.ChromePath = chromePath
	pdf, err := GenerateCaseReportPDF(context.Background(), store, caseID, opts)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(pdf[:5]))
}
