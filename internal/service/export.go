package service

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/internal/formatters"
)

const (
	summarySheet  = "Resumo"
	scheduleSheet = "Parcelas"
	brlNumFmt     = `"R$" #,##0.00`
)

// ScheduleExporter выгружает симуляцию в XLSX
type ScheduleExporter struct {
	logger *logrus.Logger
}

func NewScheduleExporter(logger *logrus.Logger) *ScheduleExporter {
	return &ScheduleExporter{logger: logger}
}

// Render строит книгу с листами сводки и графика платежей
func (e *ScheduleExporter) Render(sim *calculations.LoanSimulation) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	_ = f.SetSheetName(f.GetSheetName(0), summarySheet)
	if _, err := f.NewSheet(scheduleSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	_ = f.SetDocProps(&excelize.DocProperties{
		Creator: "EmprestAí",
		Title:   "Simulação de empréstimo",
	})

	numFmt := brlNumFmt
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	summary := []struct {
		label string
		value interface{}
		money bool
	}{
		{"Valor solicitado", sim.Amount, true},
		{"Prazo (meses)", sim.TermMonths, false},
		{"Taxa mensal", formatters.FormatPercentage(sim.InterestRate), false},
		{"Parcela mensal", sim.MonthlyPayment, true},
		{"Total a pagar", sim.TotalAmount, true},
		{"Total de juros", sim.TotalInterest, true},
	}
	for i, row := range summary {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(summarySheet, labelCell, row.label)
		_ = f.SetCellValue(summarySheet, valueCell, row.value)
		if row.money {
			_ = f.SetCellStyle(summarySheet, valueCell, valueCell, money)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), header)
	_ = f.SetColWidth(summarySheet, "A", "B", 20)

	headers := []string{"Parcela", "Pagamento", "Amortização", "Juros", "Saldo devedor"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(scheduleSheet, cell, h)
	}
	_ = f.SetCellStyle(scheduleSheet, "A1", "E1", header)

	rowIdx := 2
	for _, entry := range sim.AmortizationSchedule {
		values := []interface{}{entry.Installment, entry.Payment, entry.Principal, entry.Interest, entry.Balance}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			_ = f.SetCellValue(scheduleSheet, cell, v)
		}
		rowIdx++
	}
	if rowIdx > 2 {
		_ = f.SetCellStyle(scheduleSheet, "B2", fmt.Sprintf("E%d", rowIdx-1), money)
	}
	_ = f.SetColWidth(scheduleSheet, "A", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
