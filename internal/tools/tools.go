package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/internal/formatters"
	"github.com/emprestai/emprestai-api/internal/metrics"
	"github.com/emprestai/emprestai-api/internal/service"
	"github.com/emprestai/emprestai-api/internal/validators"
)

var (
	// ErrUnknownTool инструмент с таким именем не зарегистрирован
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidParams параметр отсутствует или имеет неверный тип
	ErrInvalidParams = errors.New("invalid parameter")
)

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Simulator считает симуляцию кредита
type Simulator interface {
	Simulate(ctx context.Context, in service.SimulationInput) (*calculations.LoanSimulation, error)
}

// LoanSimulationHandler обрабатывает запрос на симуляцию кредита по таблице Price
func LoanSimulationHandler(simulator Simulator, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "loan_simulation"

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		// Извлекаем параметры
		amount, ok := params["amount"].(float64)
		if !ok {
			return nil, fmt.Errorf("%w: amount", ErrInvalidParams)
		}
		termFloat, ok := params["term_months"].(float64)
		if !ok {
			return nil, fmt.Errorf("%w: term_months", ErrInvalidParams)
		}
		in := service.SimulationInput{Amount: amount, TermMonths: int(termFloat)}

		if raw, present := params["interest_rate"]; present {
			rate, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: interest_rate", ErrInvalidParams)
			}
			in.InterestRate = &rate
			span.SetAttributes(attribute.Float64("interest_rate", rate))
		}

		span.SetAttributes(
			attribute.Float64("amount", amount),
			attribute.Int("term_months", in.TermMonths),
		)

		metrics.APICalls.WithLabelValues("tools", toolName, "started").Inc()

		result, err := simulator.Simulate(ctx, in)
		if err != nil {
			errorType, message := "calculation", "ошибка при выполнении расчета"
			if errors.Is(err, service.ErrInvalidInput) {
				errorType, message = "validation", "неверные параметры"
			}
			span.SetAttributes(attribute.String("error", errorType+"_error"))
			metrics.ToolCalls.WithLabelValues(toolName, errorType+"_error").Inc()
			metrics.CalculationErrors.WithLabelValues(toolName, errorType).Inc()
			metrics.APICalls.WithLabelValues("tools", toolName, "error").Inc()
			return nil, fmt.Errorf("%s: %w", message, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("monthly_payment", result.MonthlyPayment),
			attribute.Float64("total_amount", result.TotalAmount),
		)

		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
		metrics.APICalls.WithLabelValues("tools", toolName, "success").Inc()

		return result, nil
	}
}

// CPFResult результат проверки CPF
type CPFResult struct {
	CPF       string `json:"cpf"`
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted"`
}

// ValidateCPFHandler проверяет контрольные цифры CPF
func ValidateCPFHandler(tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "validate_cpf"

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		cpf, ok := params["cpf"].(string)
		if !ok {
			metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
			return nil, fmt.Errorf("%w: cpf", ErrInvalidParams)
		}

		result := CPFResult{
			CPF:       cpf,
			Valid:     validators.ValidateCPF(cpf),
			Formatted: formatters.FormatCPF(cpf),
		}

		span.SetAttributes(attribute.Bool("valid", result.Valid))
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return result, nil
	}
}

// FormatValuesHandler форматирует значения для отображения в pt-BR.
// Обрабатываются только переданные параметры.
func FormatValuesHandler(tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "format_values"

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		out := map[string]interface{}{}

		if v, ok := params["currency"].(float64); ok {
			out["currency"] = formatters.FormatCurrency(v)
		}
		if v, ok := params["percentage"].(float64); ok {
			out["percentage"] = formatters.FormatPercentage(v)
		}
		if v, ok := params["cpf"].(string); ok {
			out["cpf"] = formatters.FormatCPF(v)
		}
		if v, ok := params["phone"].(string); ok {
			out["phone"] = formatters.FormatPhone(v)
		}
		if v, ok := params["currency_input"].(string); ok {
			out["currency_input"] = formatters.ParseCurrencyInput(v)
		}

		if len(out) == 0 {
			span.SetAttributes(attribute.String("error", "validation_error"))
			metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
			return nil, fmt.Errorf("%w: no values to format", ErrInvalidParams)
		}

		span.SetAttributes(attribute.Int("values", len(out)))
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return out, nil
	}
}

// Registry сопоставляет имена инструментов с обработчиками
type Registry struct {
	handlers map[string]ToolHandler
}

func NewRegistry(simulator Simulator, tracer trace.Tracer) *Registry {
	return &Registry{
		handlers: map[string]ToolHandler{
			"loan_simulation": LoanSimulationHandler(simulator, tracer),
			"validate_cpf":    ValidateCPFHandler(tracer),
			"format_values":   FormatValuesHandler(tracer),
		},
	}
}

// Call вызывает инструмент по имени
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return handler(ctx, params)
}

// Names возвращает имена инструментов по алфавиту
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
