package handler

import (
	"encoding/json"
	"net/http"

	"github.com/emprestai/emprestai-api/internal/service"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.fail(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	view, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "profile", view)
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.fail(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req service.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to decode profile")
		h.fail(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	view, err := h.profiles.Save(r.Context(), userID, req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "profile saved", view)
}

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.profiles.ListUsers(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.success(w, "users", users)
}
