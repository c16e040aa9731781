package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"habitchain/internal/habit"
	"habitchain/internal/jobs"
	"habitchain/internal/notify"
	"habitchain/internal/reminder"
)

// Daemon runs the long-lived reminder process: it arms a deferred job per
// reminder time, re-arms after every habit mutation, and runs the daily
// maintenance jobs (midnight progress reset, evening summary).
type Daemon struct {
	app      *App
	notifier notify.Notifier
	runner   *jobs.Runner
	sched    *reminder.Scheduler
	habits   *habit.Service
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewDaemon assembles the daemon on top of an already-wired App. When the
// config carries a Telegram token the reminders go to Telegram; otherwise
// they land in the structured log.
func NewDaemon(a *App) (*Daemon, error) {
	var notifier notify.Notifier
	if a.Config.Telegram.Token != "" {
		tn, err := notify.NewTelegramNotifier(a.Config.Telegram.Token, a.Config.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		notifier = tn
		a.Logger.Info("telegram notifier enabled", zap.Int64("chat_id", a.Config.Telegram.ChatID))
	} else {
		notifier = notify.NewLogNotifier(a.Logger)
	}

	handler := reminder.NewHandler(a.Store, notifier, a.Logger)
	runner := jobs.NewRunner(handler.HandleFire, a.Logger)
	sched := reminder.NewScheduler(runner, a.Logger)

	// The daemon's habit service carries the scheduler so mutations made
	// through it re-arm reminders immediately.
	habits := habit.NewService(a.Store, sched, a.Logger)

	return &Daemon{
		app:      a,
		notifier: notifier,
		runner:   runner,
		sched:    sched,
		habits:   habits,
		cron:     cron.New(),
		logger:   a.Logger,
	}, nil
}

// Run arms all reminders, starts the maintenance cron, and blocks until
// ctx ends. Pending jobs are cancelled on shutdown.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.armAll(ctx); err != nil {
		return err
	}

	if _, err := d.cron.AddFunc("0 0 * * *", func() { d.midnightRollover(ctx) }); err != nil {
		return fmt.Errorf("registering midnight job: %w", err)
	}
	summarySpec := fmt.Sprintf("0 %d * * *", d.app.Config.Reminders.SummaryHour)
	if _, err := d.cron.AddFunc(summarySpec, func() { d.eveningSummary(ctx) }); err != nil {
		return fmt.Errorf("registering summary job: %w", err)
	}
	d.cron.Start()

	changes := d.habits.Subscribe(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case _, ok := <-changes:
				if !ok {
					return nil
				}
				// Habit definitions changed; rebuild the reminder set so
				// edits made outside the scheduler path are picked up too.
				if err := d.armAll(ctx); err != nil {
					d.logger.Warn("re-arming reminders failed", zap.Error(err))
				}
			}
		}
	})

	d.logger.Info("reminder daemon running", zap.Int("pending_jobs", d.runner.Pending()))
	err := g.Wait()

	stopCtx := d.cron.Stop()
	<-stopCtx.Done()
	d.runner.Stop()

	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// armAll replaces the pending reminder jobs with one job per reminder
// time of every stored habit.
func (d *Daemon) armAll(ctx context.Context) error {
	habits, err := d.habits.List(ctx)
	if err != nil {
		return fmt.Errorf("loading habits to arm reminders: %w", err)
	}

	for _, h := range habits {
		d.sched.Cancel(h.ID)
		if err := d.sched.Schedule(h); err != nil {
			d.logger.Warn("arming reminders failed",
				zap.Int64("habit_id", h.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// midnightRollover starts the new tracking day: live progress is cleared
// on every habit and the reminder set is re-armed for the new day.
func (d *Daemon) midnightRollover(ctx context.Context) {
	habits, err := d.habits.List(ctx)
	if err != nil {
		d.logger.Warn("midnight rollover: loading habits failed", zap.Error(err))
		return
	}

	for _, h := range habits {
		if h.Progress == 0 && !h.Completed {
			continue
		}
		if _, err := d.habits.ResetProgress(ctx, h.ID); err != nil {
			d.logger.Warn("midnight rollover: resetting progress failed",
				zap.Int64("habit_id", h.ID),
				zap.Error(err),
			)
		}
	}

	if err := d.armAll(ctx); err != nil {
		d.logger.Warn("midnight rollover: re-arming reminders failed", zap.Error(err))
	}
	d.logger.Info("midnight rollover complete", zap.Int("habits", len(habits)))
}

// eveningSummary sends a same-day progress rollup through the notifier.
func (d *Daemon) eveningSummary(ctx context.Context) {
	snap, err := d.app.Stats.Today(ctx)
	if err != nil {
		d.logger.Warn("evening summary: computing stats failed", zap.Error(err))
		return
	}
	if snap.Started == 0 {
		return
	}

	n := notify.Notification{
		Channel: notify.ChannelHabitReminders,
		Title:   "Daily Summary",
		Message: fmt.Sprintf("%d of %d habits completed today. %d still to go.",
			snap.Completed, snap.Started, snap.NotDone),
	}
	if err := d.notifier.Send(ctx, n); err != nil {
		d.logger.Warn("evening summary: sending failed", zap.Error(err))
	}
}
