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

type PositionHandler struct {
	svc service.PositionService
}

func NewPositionHandler(svc service.PositionService) *PositionHandler {
	return &PositionHandler{svc: svc}
}

type PositionResponse struct {
	ID               uint64            `json:"id"`
	ItemID           uint64            `json:"itemId"`
	PositionSchemaID uint64            `json:"positionSchemaId"`
	Data             datatypes.JSONMap `json:"data"`
	CreatedAt        string            `json:"createdAt"`
	UpdatedAt        string            `json:"updatedAt"`
}

type CreatePositionRequest struct {
	PositionSchemaID uint64            `json:"positionSchemaId" validate:"required"`
	Data             datatypes.JSONMap `json:"data"`
}

type UpdatePositionRequest struct {
	Data datatypes.JSONMap `json:"data"`
}

func (h *PositionHandler) ListByItem(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	ps, err := h.svc.ListByItem(c.Request().Context(), appmw.CurrentIdentity(c), itemID)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]PositionResponse, 0, len(ps))
	for i := range ps {
		resp = append(resp, toPositionResponse(&ps[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PositionHandler) Create(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req CreatePositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	p, err := h.svc.Create(c.Request().Context(), appmw.CurrentIdentity(c), itemID, req.PositionSchemaID, req.Data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toPositionResponse(p))
}

func (h *PositionHandler) Update(c echo.Context) error {
	id, err := parseID(c, "positionId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req UpdatePositionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	p, err := h.svc.Update(c.Request().Context(), appmw.CurrentIdentity(c), id, req.Data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPositionResponse(p))
}

func (h *PositionHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "positionId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toPositionResponse(p *model.Position) PositionResponse {
	return PositionResponse{
		ID:               p.ID,
		ItemID:           p.ItemID,
		PositionSchemaID: p.PositionSchemaID,
		Data:             p.Data,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
}
