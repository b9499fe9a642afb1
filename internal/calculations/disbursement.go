package calculations

import "time"

// PaymentSchedule формирует график платежей выданного кредита.
//
// Сумма каждого платежа равна уже рассчитанному monthlyPayment, движок
// амортизации повторно не вызывается. Дата i-го платежа: disbursedAt плюс
// i календарных месяцев (с прижатием к концу месяца), без времени суток.
func PaymentSchedule(termMonths int, monthlyPayment float64, disbursedAt time.Time) []ScheduledPayment {
	payments := make([]ScheduledPayment, 0, max(termMonths, 0))
	for i := 1; i <= termMonths; i++ {
		payments = append(payments, ScheduledPayment{
			InstallmentNumber: i,
			DueDate:           AddMonths(disbursedAt, i),
			Amount:            monthlyPayment,
			Status:            PaymentPending,
		})
	}
	return payments
}

// AddMonths прибавляет календарные месяцы и отбрасывает время суток.
// Если в целевом месяце нет такого дня, берётся его последний день
// (31 января + 1 месяц = 28/29 февраля), в отличие от time.AddDate.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
