package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/service"
	"gorm.io/datatypes"
)

type ContentHandler struct {
	svc service.ContentService
}

func NewContentHandler(svc service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

type ContentResponse struct {
	ID        uint64            `json:"id"`
	ItemID    uint64            `json:"itemId"`
	Type      string            `json:"type"`
	Data      datatypes.JSONMap `json:"data"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}

type ContentRequest struct {
	Type string            `json:"type" validate:"required,oneof=file image video"`
	Data datatypes.JSONMap `json:"data"`
}

func (h *ContentHandler) ListByItem(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	cs, err := h.svc.ListByItem(c.Request().Context(), appmw.CurrentIdentity(c), itemID)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]ContentResponse, 0, len(cs))
	for i := range cs {
		resp = append(resp, toContentResponse(&cs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) Create(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req ContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	content, err := h.svc.Create(c.Request().Context(), appmw.CurrentIdentity(c), itemID, model.ContentType(req.Type), req.Data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toContentResponse(content))
}

func (h *ContentHandler) Update(c echo.Context) error {
	id, err := parseID(c, "contentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req ContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	content, err := h.svc.Update(c.Request().Context(), appmw.CurrentIdentity(c), id, model.ContentType(req.Type), req.Data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toContentResponse(content))
}

func (h *ContentHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "contentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toContentResponse(content *model.Content) ContentResponse {
	return ContentResponse{
		ID:        content.ID,
		ItemID:    content.ItemID,
		Type:      string(content.Type),
		Data:      content.Data,
		CreatedAt: content.CreatedAt.Format(time.RFC3339),
		UpdatedAt: content.UpdatedAt.Format(time.RFC3339),
	}
}
