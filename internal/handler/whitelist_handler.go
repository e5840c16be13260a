package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/service"
)

type WhitelistHandler struct {
	svc service.WhitelistService
}

func NewWhitelistHandler(svc service.WhitelistService) *WhitelistHandler {
	return &WhitelistHandler{svc: svc}
}

type WhitelistEntryResponse struct {
	ID        uint64 `json:"id"`
	ItemID    uint64 `json:"itemId"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// AddWhitelistRequest accepts a single email or a batch; exactly one form
// is used per request.
type AddWhitelistRequest struct {
	Email  string   `json:"email"`
	Emails []string `json:"emails"`
}

func (h *WhitelistHandler) List(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	entries, err := h.svc.List(c.Request().Context(), appmw.CurrentIdentity(c), itemID)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]WhitelistEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toWhitelistEntryResponse(&entries[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *WhitelistHandler) Add(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req AddWhitelistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	ctx := c.Request().Context()
	ident := appmw.CurrentIdentity(c)

	if len(req.Emails) > 0 {
		inserted, err := h.svc.BulkAdd(ctx, ident, itemID, req.Emails)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]int{"inserted": inserted})
	}

	entry, err := h.svc.Add(ctx, ident, itemID, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toWhitelistEntryResponse(entry))
}

func (h *WhitelistHandler) Remove(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	entryID, err := parseID(c, "entryId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid entry id"})
	}
	if err := h.svc.Remove(c.Request().Context(), appmw.CurrentIdentity(c), itemID, entryID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toWhitelistEntryResponse(w *model.ItemWhitelist) WhitelistEntryResponse {
	return WhitelistEntryResponse{
		ID:        w.ID,
		ItemID:    w.ItemID,
		Email:     w.Email,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}
