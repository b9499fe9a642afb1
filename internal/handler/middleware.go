package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/metrics"
)

// Заголовки, которые выставляет шлюз после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	RoleAdmin      = "admin"
)

type contextKey int

const userIDKey contextKey = iota

// userIDFromContext возвращает идентификатор клиента, записанный RequireUser
func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware пишет в лог каждый запрос и считает его в api_calls_total
func LoggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tpl
				}
			}

			status := "success"
			if rec.status >= http.StatusBadRequest {
				status = "error"
			}
			metrics.APICalls.WithLabelValues("http", endpoint, status).Inc()

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"endpoint": endpoint,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Info("HTTP запрос")
		})
	}
}

// RequireUser проверяет заголовок X-User-ID и кладет идентификатор в контекст
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			h.logger.Warn("Отсутствует заголовок X-User-ID")
			h.fail(w, "X-User-ID header is required", http.StatusUnauthorized)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.WithError(err).Warn("Неверный X-User-ID")
			h.fail(w, "invalid X-User-ID", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только запросы с ролью admin
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserRole) != RoleAdmin {
			h.fail(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
