package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/metrics"
	"digiplot/internal/repository"
	"digiplot/internal/stats"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReminderSchedule fires at 09:00 on the 25th of every month.
const DefaultReminderSchedule = "0 9 25 * *"

// RentReminder notifies active tenants who have not paid this month.
type RentReminder struct {
	store         *repository.Store
	notifications NotificationService
	schedule      string
	clock         Clock
	logger        *zap.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

func NewRentReminder(store *repository.Store, notifications NotificationService, schedule string, clock Clock, logger *zap.Logger) *RentReminder {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	return &RentReminder{
		store:         store,
		notifications: notifications,
		schedule:      schedule,
		clock:         clock,
		logger:        logger,
	}
}

// Run sends one reminder per active tenant with no payment dated in the
// current month and returns how many were sent.
func (r *RentReminder) Run(ctx context.Context) (int, error) {
	now := r.clock.now()
	tenants, err := r.store.Tenants.ListTenants(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tenants: %w", err)
	}

	due := stats.FormatDate(stats.FirstOfNextMonth(now))
	sent := 0
	for _, t := range tenants {
		if !t.IsActive() {
			continue
		}
		payments, err := r.store.Payments.ListPaymentsByTenant(ctx, t.ID)
		if err != nil {
			return sent, fmt.Errorf("failed to list payments: %w", err)
		}
		if len(stats.InMonth(payments, func(p *domain.Payment) time.Time { return p.PaymentDate }, now)) > 0 {
			continue
		}

		msg := fmt.Sprintf("Reminder: your rent is due by %s.", due)
		if u, err := r.store.Units.GetUnit(ctx, t.UnitID); err == nil {
			msg = fmt.Sprintf("Reminder: rent of %s for unit %s is due by %s.", stats.FormatKES(float64(u.RentAmount)), u.UnitNumber, due)
		}
		if _, err := r.notifications.Notify(ctx, domain.RecipientTenant, t.ID, msg); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// Start schedules Run on the configured cron expression.
func (r *RentReminder) Start() error {
	c := cron.New()
	_, err := c.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := r.Run(ctx)
		metrics.RecordReminderRun(n, err == nil)
		if err != nil {
			r.logger.Error("Rent reminder run failed", zap.Int("sent", n), zap.Error(err))
			return
		}
		r.logger.Info("Rent reminders sent", zap.Int("sent", n))
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", r.schedule, err)
	}
	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()
	c.Start()
	r.logger.Info("Rent reminder scheduled", zap.String("schedule", r.schedule))
	return nil
}

// Stop waits for a running job to finish. Calling it twice is safe.
func (r *RentReminder) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
}

// Running reports whether the schedule is active.
func (r *RentReminder) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cron != nil
}
