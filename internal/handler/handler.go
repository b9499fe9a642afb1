package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/calculations"
	"github.com/emprestai/emprestai-api/internal/models"
	"github.com/emprestai/emprestai-api/internal/service"
)

type SimulationAPI interface {
	Simulate(ctx context.Context, in service.SimulationInput) (*calculations.LoanSimulation, error)
	Export(ctx context.Context, in service.SimulationInput) ([]byte, error)
}

type ApplicationAPI interface {
	Submit(ctx context.Context, userID uuid.UUID, in service.ApplicationInput) (*models.LoanRequest, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.LoanRequest, error)
	Get(ctx context.Context, userID, loanID uuid.UUID) (*models.LoanRequest, error)
	Payments(ctx context.Context, userID, loanID uuid.UUID) ([]models.LoanPayment, error)
}

type ReviewAPI interface {
	List(ctx context.Context, status models.LoanStatus) ([]models.LoanRequest, error)
	Review(ctx context.Context, loanID, reviewerID uuid.UUID, in service.ReviewInput) (*models.LoanRequest, error)
}

type DashboardAPI interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type SettingsAPI interface {
	Current(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, values map[string]string) (models.Settings, error)
	Reset(ctx context.Context) (models.Settings, error)
}

type ProfileAPI interface {
	Get(ctx context.Context, userID uuid.UUID) (*service.ProfileView, error)
	Save(ctx context.Context, userID uuid.UUID, in service.ProfileInput) (*service.ProfileView, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
}

type ToolsAPI interface {
	Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error)
}

// HealthCheck проверяет доступность зависимости
type HealthCheck func(ctx context.Context) error

type Handler struct {
	simulations  SimulationAPI
	applications ApplicationAPI
	reviews      ReviewAPI
	dashboard    DashboardAPI
	settings     SettingsAPI
	profiles     ProfileAPI
	tools        ToolsAPI
	checks       map[string]HealthCheck
	logger       *logrus.Logger
}

type Services struct {
	Simulations  SimulationAPI
	Applications ApplicationAPI
	Reviews      ReviewAPI
	Dashboard    DashboardAPI
	Settings     SettingsAPI
	Profiles     ProfileAPI
	Tools        ToolsAPI
}

func NewHandler(svc Services, checks map[string]HealthCheck, logger *logrus.Logger) *Handler {
	return &Handler{
		simulations:  svc.Simulations,
		applications: svc.Applications,
		reviews:      svc.Reviews,
		dashboard:    svc.Dashboard,
		settings:     svc.Settings,
		profiles:     svc.Profiles,
		tools:        svc.Tools,
		checks:       checks,
		logger:       logger,
	}
}

// NewRouter регистрирует все маршруты API
func (h *Handler) NewRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware(h.logger))

	router.HandleFunc("/health", h.Health).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/simulations", h.Simulate).Methods("POST")
	api.HandleFunc("/simulations/export", h.ExportSimulation).Methods("POST")
	api.HandleFunc("/tools/{name}", h.CallTool).Methods("POST")

	// Маршруты клиента
	loans := api.PathPrefix("/loans").Subrouter()
	loans.Use(h.RequireUser)
	loans.HandleFunc("", h.SubmitLoan).Methods("POST")
	loans.HandleFunc("", h.ListLoans).Methods("GET")
	loans.HandleFunc("/{id}", h.GetLoan).Methods("GET")
	loans.HandleFunc("/{id}/payments", h.LoanPayments).Methods("GET")

	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(h.RequireUser)
	profile.HandleFunc("", h.GetProfile).Methods("GET")
	profile.HandleFunc("", h.SaveProfile).Methods("PUT")

	// Маршруты администратора
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.RequireUser, h.RequireAdmin)
	admin.HandleFunc("/loans", h.AdminListLoans).Methods("GET")
	admin.HandleFunc("/loans/{id}/status", h.ReviewLoan).Methods("PATCH")
	admin.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	admin.HandleFunc("/users", h.AdminListUsers).Methods("GET")
	admin.HandleFunc("/settings", h.GetSettings).Methods("GET")
	admin.HandleFunc("/settings", h.UpdateSettings).Methods("PUT")
	admin.HandleFunc("/settings/reset", h.ResetSettings).Methods("POST")

	return router
}

// Health отвечает 200, если все зависимости доступны
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	result := map[string]string{}
	healthy := true
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			h.logger.WithError(err).WithField("dependency", name).Warn("Health check failed")
			result[name] = "down"
			healthy = false
			continue
		}
		result[name] = "up"
	}

	if !healthy {
		h.response(w, "degraded", result, http.StatusServiceUnavailable, "error", http.StatusServiceUnavailable)
		return
	}
	h.success(w, "ok", result)
}
