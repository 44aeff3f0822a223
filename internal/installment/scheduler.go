// Package installment generates and adjusts fiado payment schedules.
package installment

import (
	"time"

	"github.com/shopspring/decimal"

	"pos-service/internal/models"
	"pos-service/internal/money"
)

// Schedule bounds and cadence. Installment n falls due n*IntervalDays after
// generation; the cadence is a fixed 30 days, not calendar-month-aware.
const (
	MinCount     = 1
	MaxCount     = 24
	IntervalDays = 30
)

// ClampCount forces a requested installment count into [MinCount, MaxCount].
func ClampCount(count int) int {
	if count < MinCount {
		return MinCount
	}
	if count > MaxCount {
		return MaxCount
	}
	return count
}

// Generate produces a schedule of count installments splitting total evenly,
// due at 30-day steps from now. The per-installment value is total/count
// rounded to cents with no remainder correction, so the schedule sum may
// drift from the total by up to one cent.
func Generate(total decimal.Decimal, count int, now time.Time) []models.Installment {
	count = ClampCount(count)
	per := money.SplitEven(total, count)

	schedule := make([]models.Installment, count)
	for i := 0; i < count; i++ {
		seq := i + 1
		schedule[i] = models.Installment{
			Seq:     seq,
			Count:   count,
			Amount:  per,
			DueDate: now.AddDate(0, 0, IntervalDays*seq),
			Status:  models.InstallmentStatusPending,
		}
	}
	return schedule
}

// EditDueDate mutates only the targeted entry's due date. Seq is 1-based.
// No ordering or future-date validation is performed; keeping dates sane is
// the operator's responsibility.
func EditDueDate(schedule []models.Installment, seq int, newDate time.Time) error {
	if seq < 1 || seq > len(schedule) {
		return models.NewValidationError("installment sequence out of range")
	}
	schedule[seq-1].DueDate = newDate
	return nil
}

// Sum adds up the schedule's installment values.
func Sum(schedule []models.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range schedule {
		total = total.Add(inst.Amount)
	}
	return total
}
