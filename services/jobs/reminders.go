package jobs

import (
	"context"
	"fmt"
	"time"

	"crm_legal_go/logger"
	"crm_legal_go/models"
	"crm_legal_go/services"

	"github.com/patrickmn/go-cache"
)

// Hearings have no acknowledgment column; sent reminders are remembered in
// memory long enough to outlive the reminder window of any hearing.
const hearingSentTTL = 48 * time.Hour

// ReminderJob collects due reminders, delivers them and acknowledges what
// was delivered. Nothing is acknowledged when delivery fails.
type ReminderJob struct {
	store    *services.Store
	notifier Notifier
	log      *logger.Logger
	sent     *cache.Cache
}

func NewReminderJob(store *services.Store, notifier Notifier, log *logger.Logger) *ReminderJob {
	return &ReminderJob{
		store:    store,
		notifier: notifier,
		log:      log,
		sent:     cache.New(hearingSentTTL, time.Hour),
	}
}

func hearingKey(h models.Hearing) string {
	// Rescheduling a hearing produces a new key and a new reminder
	return fmt.Sprintf("hearing:%d:%s:%s", h.ID, h.Date, h.Time)
}

// DueHearings returns the hearings whose reminder time has arrived, that
// have not started yet and were not announced before
func (j *ReminderJob) DueHearings() ([]models.Hearing, error) {
	candidates, err := j.store.ListHearingsWithReminder()
	if err != nil {
		return nil, err
	}
	now := j.store.Now()
	var due []models.Hearing
	for _, h := range candidates {
		if _, seen := j.sent.Get(hearingKey(h)); seen {
			continue
		}
		start, err := h.StartsAt(now.Location())
		if err != nil {
			j.log.Warn("skipping hearing with malformed date", "hearing_id", h.ID, "error", err)
			continue
		}
		remindAt, _ := h.RemindAt(now.Location())
		if !now.Before(remindAt) && now.Before(start) {
			due = append(due, h)
		}
	}
	return due, nil
}

// CollectReminders builds the digest of due task and hearing reminders
func (j *ReminderJob) CollectReminders() (services.ReminderDigest, error) {
	digest := services.ReminderDigest{Date: j.store.Now().Format(services.DateLayout)}
	tasks, err := j.store.ListTasksForReminder()
	if err != nil {
		return digest, err
	}
	hearings, err := j.DueHearings()
	if err != nil {
		return digest, err
	}
	digest.Tasks = tasks
	digest.Hearings = hearings
	return digest, nil
}

// CollectIdleCases builds the digest of cases due for an inactivity notice
func (j *ReminderJob) CollectIdleCases() (services.ReminderDigest, error) {
	digest := services.ReminderDigest{Date: j.store.Now().Format(services.DateLayout)}
	cases, err := j.store.ListCasesForInactivityCheck()
	if err != nil {
		return digest, err
	}
	digest.IdleCases = cases
	return digest, nil
}

// RunReminders delivers due task and hearing reminders
func (j *ReminderJob) RunReminders(ctx context.Context) error {
	digest, err := j.CollectReminders()
	if err != nil {
		return fmt.Errorf("collecting reminders: %w", err)
	}
	return j.deliver(ctx, digest)
}

// RunInactivityCheck delivers notices for idle cases
func (j *ReminderJob) RunInactivityCheck(ctx context.Context) error {
	digest, err := j.CollectIdleCases()
	if err != nil {
		return fmt.Errorf("collecting idle cases: %w", err)
	}
	return j.deliver(ctx, digest)
}

// Run performs both checks in one digest
func (j *ReminderJob) Run(ctx context.Context) error {
	digest, err := j.CollectReminders()
	if err != nil {
		return fmt.Errorf("collecting reminders: %w", err)
	}
	idle, err := j.CollectIdleCases()
	if err != nil {
		return fmt.Errorf("collecting idle cases: %w", err)
	}
	digest.IdleCases = idle.IdleCases
	return j.deliver(ctx, digest)
}

func (j *ReminderJob) deliver(ctx context.Context, digest services.ReminderDigest) error {
	if digest.Empty() {
		j.log.Debug("no reminders due")
		return nil
	}
	if err := j.notifier.Notify(ctx, digest); err != nil {
		j.log.Error("reminder delivery failed", "items", digest.Count(), "error", err)
		return fmt.Errorf("delivering reminders: %w", err)
	}
	j.acknowledge(digest)
	j.log.Info("reminders delivered", "tasks", len(digest.Tasks), "hearings", len(digest.Hearings), "idle_cases", len(digest.IdleCases))
	return nil
}

// acknowledge records delivery so the same items are not announced again today.
// Failures are logged: the item is simply announced again on the next run.
func (j *ReminderJob) acknowledge(digest services.ReminderDigest) {
	for _, t := range digest.Tasks {
		if _, err := j.store.MarkTaskNotified(t.ID); err != nil {
			j.log.Warn("could not acknowledge task reminder", "task_id", t.ID, "error", err)
		}
	}
	for _, h := range digest.Hearings {
		j.sent.SetDefault(hearingKey(h), true)
	}
	for _, c := range digest.IdleCases {
		if _, err := j.store.MarkCaseInactivityNotified(c.ID); err != nil {
			j.log.Warn("could not acknowledge inactivity notice", "case_id", c.ID, "error", err)
		}
	}
}
