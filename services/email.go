package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"
	texttemplate "text/template"

	"crm_legal_go/config"
	"crm_legal_go/logger"
	"crm_legal_go/models"

	"github.com/resend/resend-go/v2"
)

//go:embed templates/emails/*
var emailTemplates embed.FS

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders templates/emails/<name>.html and .txt with data
func loadTemplate(name string, data interface{}) (html string, text string, err error) {
	htmlSrc, err := emailTemplates.ReadFile(path.Join("templates/emails", name+".html"))
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s.html: %w", name, err)
	}
	htmlTmpl, err := template.New(name + ".html").Parse(string(htmlSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.html: %w", name, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %w", name, err)
	}

	textSrc, err := emailTemplates.ReadFile(path.Join("templates/emails", name+".txt"))
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s.txt: %w", name, err)
	}
	textTmpl, err := texttemplate.New(name + ".txt").Parse(string(textSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.txt: %w", name, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %w", name, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, log *logger.Logger, email *Email) error {
	// In test mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmail(log, email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Info("email sent", "resend_id", sent.Id, "to", email.To)
	return nil
}

// logEmail records an email that was not actually sent
func logEmail(log *logger.Logger, email *Email) {
	log.Info("email logged (test mode, not sent)",
		"to", email.To,
		"subject", email.Subject,
		"text", email.TextBody,
		"html_preview", truncate(email.HTMLBody, 500),
	)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// ReminderDigest groups everything that needs the attorney's attention
type ReminderDigest struct {
	Date      string
	Tasks     []models.Task
	Hearings  []models.Hearing
	IdleCases []models.Case
}

// Empty reports whether the digest has nothing to announce
func (d ReminderDigest) Empty() bool {
	return len(d.Tasks) == 0 && len(d.Hearings) == 0 && len(d.IdleCases) == 0
}

// Count returns the number of items in the digest
func (d ReminderDigest) Count() int {
	return len(d.Tasks) + len(d.Hearings) + len(d.IdleCases)
}

// Subject summarizes the digest for a notification title
func (d ReminderDigest) Subject() string {
	var parts []string
	if n := len(d.Hearings); n > 0 {
		parts = append(parts, fmt.Sprintf("%d audiencia(s)", n))
	}
	if n := len(d.Tasks); n > 0 {
		parts = append(parts, fmt.Sprintf("%d tarea(s)", n))
	}
	if n := len(d.IdleCases); n > 0 {
		parts = append(parts, fmt.Sprintf("%d caso(s) sin movimiento", n))
	}
	if len(parts) == 0 {
		return "Recordatorios " + d.Date
	}
	return fmt.Sprintf("Recordatorios %s: %s", d.Date, strings.Join(parts, ", "))
}

// BuildReminderDigestEmail renders the reminder digest for one recipient
func BuildReminderDigestEmail(to string, digest ReminderDigest) (*Email, error) {
	html, text, err := loadTemplate("reminder_digest", digest)
	if err != nil {
		return nil, err
	}
	return &Email{
		To:       []string{to},
		Subject:  digest.Subject(),
		HTMLBody: html,
		TextBody: text,
	}, nil
}
