package jobs

import (
	"context"

	"crm_legal_go/config"
	"crm_legal_go/logger"
	"crm_legal_go/services"
)

// Notifier delivers a reminder digest to the attorney
type Notifier interface {
	Notify(ctx context.Context, digest services.ReminderDigest) error
}

// LogNotifier writes digests to the log. Used when no recipient is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, digest services.ReminderDigest) error {
	for _, h := range digest.Hearings {
		n.log.Info("hearing reminder", "hearing_id", h.ID, "date", h.Date, "time", h.Time, "description", h.Description, "case", h.CaseTitle)
	}
	for _, t := range digest.Tasks {
		n.log.Info("task reminder", "task_id", t.ID, "due_date", t.DueDate, "priority", t.Priority, "description", t.Description, "case", t.CaseTitle)
	}
	for _, c := range digest.IdleCases {
		n.log.Info("inactive case", "case_id", c.ID, "title", c.Title, "client", c.ClientName, "threshold_days", c.InactivityThresholdDays)
	}
	return nil
}

// EmailNotifier sends digests through Resend
type EmailNotifier struct {
	cfg *config.Config
	log *logger.Logger
}

func NewEmailNotifier(cfg *config.Config, log *logger.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, log: log}
}

func (n *EmailNotifier) Notify(ctx context.Context, digest services.ReminderDigest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	email, err := services.BuildReminderDigestEmail(n.cfg.NotifyEmail, digest)
	if err != nil {
		return err
	}
	return services.SendEmail(n.cfg, n.log, email)
}

// NewNotifier picks the email notifier when a recipient is configured
func NewNotifier(cfg *config.Config, log *logger.Logger) Notifier {
	if cfg.NotifyEmail != "" {
		return NewEmailNotifier(cfg, log)
	}
	return NewLogNotifier(log)
}
