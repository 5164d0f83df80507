package services

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"crm_legal_go/models"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetClients  = "Clientes"
	SheetCases    = "Casos"
	SheetTasks    = "Tareas"
	SheetHearings = "Audiencias"
)

var (
	clientHeaders  = []string{"ID", "Nombre", "Dirección", "Email", "WhatsApp", "Alta"}
	caseHeaders    = []string{"ID", "Cliente", "Expediente", "Año", "Carátula", "Juzgado", "Jurisdicción", "Etapa", "Última actividad"}
	taskHeaders    = []string{"ID", "Caso", "Descripción", "Vencimiento", "Prioridad", "Estado", "Plazo procesal", "Notas"}
	hearingHeaders = []string{"ID", "Caso", "Fecha", "Hora", "Descripción", "Link"}
)

// workbookWriter appends rows to a sheet
type workbookWriter struct {
	f *excelize.File
}

func (w workbookWriter) writeRow(sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, cell, &values)
}

func (w workbookWriter) writeHeaders(sheet string, headers []string, style int) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := w.writeRow(sheet, 1, values); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return w.f.SetColWidth(sheet, "A", lastCol, 20)
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).Format(DateTimeLayout)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportWorkbook writes every client, case, task and hearing to an .xlsx workbook
func ExportWorkbook(store *Store) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()
	w := workbookWriter{f: f}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetClients); err != nil {
		return nil, err
	}
	for _, sheet := range []string{SheetCases, SheetTasks, SheetHearings} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	for sheet, headers := range map[string][]string{
		SheetClients:  clientHeaders,
		SheetCases:    caseHeaders,
		SheetTasks:    taskHeaders,
		SheetHearings: hearingHeaders,
	} {
		if err := w.writeHeaders(sheet, headers, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to write %s headers: %w", sheet, err)
		}
	}

	clients, err := store.ListClients()
	if err != nil {
		return nil, err
	}

	var cases []models.Case
	for i, c := range clients {
		row := []interface{}{c.ID, c.Name, c.Address, c.Email, c.Phone, formatUnix(c.CreatedAt)}
		if err := w.writeRow(SheetClients, i+2, row); err != nil {
			return nil, err
		}
		clientCases, err := store.ListCasesByClient(c.ID)
		if err != nil {
			return nil, err
		}
		cases = append(cases, clientCases...)
	}

	var tasks []models.Task
	for i, c := range cases {
		row := []interface{}{c.ID, c.ClientName, c.FileNumber, c.Year, c.Title, c.Court, c.Jurisdiction, c.Stage, formatUnix(c.LastActivityTimestamp)}
		if err := w.writeRow(SheetCases, i+2, row); err != nil {
			return nil, err
		}
		caseTasks, err := store.ListTasksByCase(c.ID, true, models.TaskOrderDueDate)
		if err != nil {
			return nil, err
		}
		for j := range caseTasks {
			caseTasks[j].CaseTitle = c.Title
		}
		tasks = append(tasks, caseTasks...)
	}

	general, err := store.ListGeneralTasks(true, models.TaskOrderDueDate)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, general...)
	for i, t := range tasks {
		deadline := ""
		if t.IsProceduralDeadline {
			deadline = "Sí"
		}
		row := []interface{}{t.ID, t.CaseTitle, t.Description, derefString(t.DueDate), string(t.Priority), string(t.Status), deadline, t.Notes}
		if err := w.writeRow(SheetTasks, i+2, row); err != nil {
			return nil, err
		}
	}

	dates, err := store.ListHearingDates()
	if err != nil {
		return nil, err
	}
	row := 2
	for _, date := range dates {
		hearings, err := store.ListHearingsByDate(date)
		if err != nil {
			return nil, err
		}
		for _, h := range hearings {
			values := []interface{}{h.ID, h.CaseTitle, h.Date, h.Time, h.Description, h.Link}
			if err := w.writeRow(SheetHearings, row, values); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// ExportWorkbookToDir writes the workbook to dir with a timestamped name and
// returns its path
func ExportWorkbookToDir(store *Store, dir string) (string, error) {
	buf, err := ExportWorkbook(store)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	name := fmt.Sprintf("crm_legal_%s.xlsx", store.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	store.Logger().Info("workbook exported", "path", path)
	return path, nil
}

// ImportResult contains the summary of the import process
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	SuccessCount   int      `json:"success_count"`
	FailedCount    int      `json:"failed_count"`
	Errors         []string `json:"errors"`
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// ImportClients adds one client per row of the Clientes sheet (or the first
// sheet when there is none). Columns: Nombre, Dirección, Email, WhatsApp.
// The first row is a header. Rows without a name are reported and skipped.
func ImportClients(store *Store, file io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, validationError("not a valid excel file: %v", err)
	}
	defer f.Close()

	sheet := SheetClients
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, validationError("invalid excel format: no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", sheet, err)
	}

	result := &ImportResult{Errors: []string{}}
	for i, row := range rows {
		if i == 0 {
			continue
		} // Header
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		result.TotalProcessed++

		client := models.Client{
			Name:    cellAt(row, 0),
			Address: cellAt(row, 1),
			Email:   cellAt(row, 2),
			Phone:   cellAt(row, 3),
		}
		if client.Name == "" {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: falta el nombre", i+1))
			continue
		}
		if _, err := store.AddClient(client); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: %v", i+1, err))
			continue
		}
		result.SuccessCount++
	}

	store.Logger().Info("clients imported", "processed", result.TotalProcessed, "ok", result.SuccessCount, "failed", result.FailedCount)
	return result, nil
}
