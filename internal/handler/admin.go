package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/emprestai/emprestai-api/internal/models"
	"github.com/emprestai/emprestai-api/internal/service"
)

func (h *Handler) AdminListLoans(w http.ResponseWriter, r *http.Request) {
	status := models.LoanStatus(r.URL.Query().Get("status"))

	loans, err := h.reviews.List(r.Context(), status)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "loan requests", loans)
}

func (h *Handler) ReviewLoan(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := userIDFromContext(r.Context())
	if !ok {
		h.fail(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	loanID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "invalid loan ID", http.StatusBadRequest)
		return
	}

	var req service.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	loan, err := h.reviews.Review(r.Context(), loanID, reviewerID, req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, fmt.Sprintf("loan request %s", loan.Status), loan)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "dashboard", stats)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Current(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "settings", settings)
}

// UpdateSettings принимает объект {ключ: значение}; значения могут быть
// строками, числами или булевыми
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	values := make(map[string]string, len(req))
	for key, raw := range req {
		switch v := raw.(type) {
		case string:
			values[key] = v
		case float64:
			values[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			values[key] = strconv.FormatBool(v)
		default:
			h.fail(w, fmt.Sprintf("invalid value for %s", key), http.StatusBadRequest)
			return
		}
	}

	settings, err := h.settings.Update(r.Context(), values)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "settings updated", settings)
}

func (h *Handler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Reset(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "settings reset", settings)
}
