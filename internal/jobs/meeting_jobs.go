package jobs

import (
	"context"
	"fmt"
	"time"

	"meetingroom-backend/internal/config"
	"meetingroom-backend/internal/logger"
	"meetingroom-backend/internal/repository"
	"meetingroom-backend/internal/service"
)

const jobTimeout = 2 * time.Minute

// JobRunner holds everything the scheduled jobs need. The jobs only derive
// the display statuses IN_PROGRESS and COMPLETED and send reminders; they
// never touch the booking transitions.
type JobRunner struct {
	meetings repository.MeetingRepository
	notifier service.Notifier
	cfg      *config.Config
}

func NewJobRunner(meetings repository.MeetingRepository, notifier service.Notifier, cfg *config.Config) *JobRunner {
	return &JobRunner{
		meetings: meetings,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Config returns the loaded configuration (used by the scheduler to read
// cron specs).
func (j *JobRunner) Config() *config.Config {
	return j.cfg
}

// MarkInProgressMeetings flips SCHEDULED meetings whose window contains now
// to IN_PROGRESS.
func (j *JobRunner) MarkInProgressMeetings() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.meetings.MarkInProgress(ctx, time.Now())
	if err != nil {
		logger.Error("MarkInProgressMeetings failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Marked meetings in progress", "count", n)
	}
}

// MarkCompletedMeetings flips meetings whose window has ended to COMPLETED.
func (j *JobRunner) MarkCompletedMeetings() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.meetings.MarkCompleted(ctx, time.Now())
	if err != nil {
		logger.Error("MarkCompletedMeetings failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Marked meetings completed", "count", n)
	}
}

// SendMeetingReminders notifies participants of meetings starting within
// the configured lead window.
func (j *JobRunner) SendMeetingReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	now := time.Now()
	lead := time.Duration(j.cfg.Scheduler.ReminderLeadMinutes) * time.Minute
	meetings, err := j.meetings.ListStartingBetween(ctx, now, now.Add(lead))
	if err != nil {
		logger.Error("SendMeetingReminders failed", "error", err)
		return
	}

	for _, m := range meetings {
		body := fmt.Sprintf("%s starts at %s", m.Title, m.StartTime.Format(time.RFC3339))
		j.notifier.Notify(m.Participants, "Meeting reminder", body)
	}
	if len(meetings) > 0 {
		logger.Info("Sent meeting reminders", "meetings", len(meetings))
	}
}
