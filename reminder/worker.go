package reminder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmsalesdesk/salesdesk_backend/config"
	"github.com/mmsalesdesk/salesdesk_backend/models"
	"github.com/mmsalesdesk/salesdesk_backend/utils"
	"gorm.io/gorm"
)

// reminders fire only on these exact overdue day counts
var reminderThresholds = map[int]bool{
	3:  true,
	7:  true,
	14: true,
	30: true,
}

// ShouldRemind reports whether an invoice overdue by exactly daysOverdue days
// gets a reminder.
func ShouldRemind(daysOverdue int) bool {
	return reminderThresholds[daysOverdue]
}

// Worker scans invoices once a day and emails clients whose invoices are
// overdue by exactly 3, 7, 14 or 30 days. A redis lock keeps replicas from
// scanning concurrently and a redis send-log keeps an invoice+threshold pair
// from being mailed twice.
type Worker struct {
	db          *gorm.DB
	mailer      config.Mailer
	locker      *redislock.Client
	companyName string
	interval    time.Duration
}

func NewWorker(db *gorm.DB, mailer config.Mailer) *Worker {
	companyName := os.Getenv("COMPANY_NAME")
	if companyName == "" {
		companyName = "SalesDesk"
	}
	return &Worker{
		db:          db,
		mailer:      mailer,
		locker:      config.GetRedisLock(),
		companyName: companyName,
		interval:    24 * time.Hour,
	}
}

// Run ticks once at startup and then every 24 hours until the context is
// cancelled. Call from a goroutine in main().
func (w *Worker) Run(ctx context.Context) {
	logger := config.GetLogger()
	logger.WithField("module", "reminder").Info("payment reminder worker started")

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.WithField("module", "reminder").Info("payment reminder worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	logger := config.GetLogger()

	// only one replica scans per tick; lock failures other than "held" are
	// logged and the scan proceeds
	if w.locker != nil {
		lock, err := w.locker.Obtain(ctx, "payment-reminder-tick", 10*time.Minute, nil)
		if err == redislock.ErrNotObtained {
			return
		} else if err != nil {
			config.LogError(logger, "reminder", "tick", "obtain lock", nil, err)
		} else {
			defer lock.Release(ctx)
		}
	}

	if err := w.markOverdue(ctx); err != nil {
		config.LogError(logger, "reminder", "tick", "mark overdue", nil, err)
	}

	invoices, err := models.OverdueReminderCandidates(w.db, ctx)
	if err != nil {
		config.LogError(logger, "reminder", "tick", "load candidates", nil, err)
		return
	}

	now := time.Now()
	sent := 0
	for _, invoice := range invoices {
		if err := w.remind(invoice, now); err != nil {
			config.LogError(logger, "reminder", "tick", "send reminder", invoice.InvoiceNumber, err)
			continue
		}
		sent++
	}
	logger.WithFields(map[string]interface{}{
		"module":     "reminder",
		"candidates": len(invoices),
		"processed":  sent,
	}).Info("payment reminder tick complete")
}

// markOverdue flips stale Pending/Partial statuses to Overdue so listings and
// the reminder scan agree with the derivation rule.
func (w *Worker) markOverdue(ctx context.Context) error {
	return w.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("payment_status IN ?", []models.InvoicePaymentStatus{
			models.InvoicePaymentStatusPending,
			models.InvoicePaymentStatusPartial,
		}).
		Where("due_date IS NOT NULL AND due_date < ?", time.Now()).
		Where("current_status != ?", models.InvoiceStatusVoid).
		UpdateColumn("payment_status", models.InvoicePaymentStatusOverdue).Error
}

func (w *Worker) remind(invoice *models.Invoice, now time.Time) error {
	if invoice.DueDate == nil {
		return nil
	}
	daysOverdue := utils.DaysBetween(*invoice.DueDate, now)
	if !ShouldRemind(daysOverdue) {
		return nil
	}
	if !invoice.Outstanding().IsPositive() {
		return nil
	}
	if invoice.Client == nil || invoice.Client.ReminderEmail() == "" {
		return nil
	}

	// once per invoice+threshold; the key outlives the 24h tick comfortably
	dedupeKey := fmt.Sprintf("reminder-sent:%s:%d", invoice.InvoiceNumber, daysOverdue)
	won, err := config.SetRedisValueNX(dedupeKey, now.Format(time.RFC3339), 72*time.Hour)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	subject, body := RenderReminder(invoice, daysOverdue, w.companyName)
	return w.mailer.Send(invoice.Client.ReminderEmail(), subject, body)
}
