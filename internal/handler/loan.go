package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/emprestai/emprestai-api/internal/models"
	"github.com/emprestai/emprestai-api/internal/service"
)

func (h *Handler) SubmitLoan(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.fail(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req service.ApplicationInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to decode loan request")
		h.fail(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	loan, err := h.applications.Submit(r.Context(), userID, req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	message := "loan request submitted"
	if loan.Status == models.StatusApproved {
		message = "loan request approved automatically"
	}
	h.created(w, message, loan)
}

func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.fail(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	loans, err := h.applications.List(r.Context(), userID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "loan requests", loans)
}

func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	userID, loanID, ok := h.userAndLoan(w, r)
	if !ok {
		return
	}

	loan, err := h.applications.Get(r.Context(), userID, loanID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "loan request", loan)
}

func (h *Handler) LoanPayments(w http.ResponseWriter, r *http.Request) {
	userID, loanID, ok := h.userAndLoan(w, r)
	if !ok {
		return
	}

	payments, err := h.applications.Payments(r.Context(), userID, loanID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "loan payments", payments)
}

func (h *Handler) userAndLoan(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.fail(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	loanID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "invalid loan ID", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, loanID, true
}
