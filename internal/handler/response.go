package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/service"
	"github.com/emprestai/emprestai-api/internal/tools"
)

type APIResponse struct {
	ErrorCode int         `json:"error_code"`
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
}

func (h *Handler) response(w http.ResponseWriter, message string, data interface{}, errorCode int, status string, httpStatus int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIResponse{
		ErrorCode: errorCode,
		Status:    status,
		Message:   message,
		Data:      data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.WithError(err).Error("Failed to write response")
	}
}

func (h *Handler) success(w http.ResponseWriter, message string, data interface{}) {
	h.response(w, message, data, 0, "success", http.StatusOK)
}

func (h *Handler) created(w http.ResponseWriter, message string, data interface{}) {
	h.response(w, message, data, 0, "success", http.StatusCreated)
}

func (h *Handler) fail(w http.ResponseWriter, message string, httpStatus int) {
	h.response(w, message, nil, httpStatus, "error", httpStatus)
}

// serviceError переводит ошибки сервисов в HTTP статусы
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, tools.ErrInvalidParams):
		h.fail(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrConflict):
		h.fail(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, tools.ErrUnknownTool):
		h.fail(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		h.fail(w, "access denied", http.StatusForbidden)
	default:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("Request failed")
		h.fail(w, "internal server error", http.StatusInternalServerError)
	}
}
