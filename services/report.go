package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"crm_legal_go/models"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/reports/case_report.html
var caseReportSource string

var caseReportTemplate = template.Must(template.New("case_report").Funcs(template.FuncMap{
	"deref": derefString,
}).Parse(caseReportSource))

// notesPolicy is safe for concurrent use once built
var notesPolicy = bluemonday.UGCPolicy()

// CaseReport gathers everything printed on a case summary
type CaseReport struct {
	Case        models.Case
	Profile     *models.UserProfile
	Tags        []models.Tag
	Parties     []models.Party
	Hearings    []models.Hearing
	Tasks       []models.Task
	Activities  []models.Activity
	GeneratedAt time.Time
}

// NotesHTML returns the case notes with line breaks kept and any markup
// reduced to what bluemonday's UGC policy allows
func (r *CaseReport) NotesHTML() template.HTML {
	notes := strings.ReplaceAll(r.Case.Notes, "\r\n", "\n")
	notes = strings.ReplaceAll(notes, "\n", "<br>")
	return template.HTML(notesPolicy.Sanitize(notes))
}

// BuildCaseReport loads a case with its parties, hearings, tasks, tags and
// activity log. It returns ErrNotFound when the case does not exist.
func BuildCaseReport(store *Store, caseID uint) (*CaseReport, error) {
	c, err := store.GetCase(caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("case %d: %w", caseID, ErrNotFound)
	}

	report := &CaseReport{Case: *c, GeneratedAt: store.Now()}

	if report.Profile, err = store.GetProfile(); err != nil {
		return nil, err
	}
	if report.Tags, err = store.ListCaseTags(caseID); err != nil {
		return nil, err
	}
	if report.Parties, err = store.ListParties(caseID); err != nil {
		return nil, err
	}
	if report.Hearings, err = store.ListHearingsByCase(caseID); err != nil {
		return nil, err
	}
	if report.Tasks, err = store.ListTasksByCase(caseID, true, models.TaskOrderDueDate); err != nil {
		return nil, err
	}
	if report.Activities, err = store.ListActivities(caseID, false); err != nil {
		return nil, err
	}
	return report, nil
}

// RenderHTML renders the report as a standalone printable document
func (r *CaseReport) RenderHTML() (string, error) {
	var buf bytes.Buffer
	if err := caseReportTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render case report: %w", err)
	}
	return buf.String(), nil
}

// BuildCaseReportHTML renders the printable summary of a case
func BuildCaseReportHTML(store *Store, caseID uint) (string, error) {
	report, err := BuildCaseReport(store, caseID)
	if err != nil {
		return "", err
	}
	return report.RenderHTML()
}

// GenerateCaseReportPDF prints the case summary through headless Chrome
func GenerateCaseReportPDF(ctx context.Context, store *Store, caseID uint, options PDFOptions) ([]byte, error) {
	html, err := BuildCaseReportHTML(store, caseID)
	if err != nil {
		return nil, err
	}
	pdf, err := GeneratePDF(ctx, html, options)
	if err != nil {
		store.Logger().Error("case report PDF failed", "case_id", caseID, "error", err)
		return nil, err
	}
	store.Logger().Info("case report generated", "case_id", caseID, "bytes", len(pdf))
	return pdf, nil
}
