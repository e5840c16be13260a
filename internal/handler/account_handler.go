package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/service"
)

type AccountHandler struct {
	deletions *service.DeletionService
}

func NewAccountHandler(deletions *service.DeletionService) *AccountHandler {
	return &AccountHandler{deletions: deletions}
}

type AccountDeletionResponse struct {
	ID          uint64 `json:"id"`
	Status      string `json:"status"`
	ScheduledAt string `json:"scheduledAt"`
	CreatedAt   string `json:"createdAt"`
}

// DeletionCallbackRequest is posted by the external scheduler once the
// grace period has elapsed.
type DeletionCallbackRequest struct {
	UserID string `json:"userId" validate:"required"`
	JobRef string `json:"jobRef"`
}

func (h *AccountHandler) RequestDeletion(c echo.Context) error {
	d, err := h.deletions.RequestAccountDeletion(c.Request().Context(), appmw.CurrentIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toAccountDeletionResponse(d))
}

func (h *AccountHandler) DeletionStatus(c echo.Context) error {
	d, err := h.deletions.AccountDeletionStatus(c.Request().Context(), appmw.CurrentIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toAccountDeletionResponse(d))
}

func (h *AccountHandler) CancelDeletion(c echo.Context) error {
	d, err := h.deletions.CancelAccountDeletion(c.Request().Context(), appmw.CurrentIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toAccountDeletionResponse(d))
}

// DeletionCallback completes a scheduled account wipe. The route is guarded
// by the scheduler token middleware, not by user auth.
func (h *AccountHandler) DeletionCallback(c echo.Context) error {
	var req DeletionCallbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	if err := h.deletions.CompleteAccountDeletion(c.Request().Context(), req.UserID, req.JobRef); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "completed"})
}

func toAccountDeletionResponse(d *model.AccountDeletion) AccountDeletionResponse {
	return AccountDeletionResponse{
		ID:          d.ID,
		Status:      string(d.Status),
		ScheduledAt: d.ScheduledAt.Format(time.RFC3339),
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
