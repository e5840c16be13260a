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

type PositionSchemaHandler struct {
	svc service.PositionSchemaService
}

func NewPositionSchemaHandler(svc service.PositionSchemaService) *PositionSchemaHandler {
	return &PositionSchemaHandler{svc: svc}
}

type PositionSchemaResponse struct {
	ID        uint64            `json:"id"`
	Name      string            `json:"name"`
	Schema    datatypes.JSONMap `json:"schema"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}

type PositionSchemaRequest struct {
	Name   string            `json:"name" validate:"required,max=120"`
	Schema datatypes.JSONMap `json:"schema"`
}

func (h *PositionSchemaHandler) List(c echo.Context) error {
	ident := appmw.CurrentIdentity(c)
	search := c.QueryParam("search")

	if p := bindPageParams(c); p != nil {
		page, err := h.svc.ListPage(c.Request().Context(), ident, search, *p)
		if err != nil {
			return respondError(c, err)
		}
		data := make([]PositionSchemaResponse, 0, len(page.Items))
		for i := range page.Items {
			data = append(data, toPositionSchemaResponse(&page.Items[i]))
		}
		return c.JSON(http.StatusOK, PagedResponse{Data: data, Pagination: pageMeta(page)})
	}

	ss, err := h.svc.List(c.Request().Context(), ident, search)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]PositionSchemaResponse, 0, len(ss))
	for i := range ss {
		resp = append(resp, toPositionSchemaResponse(&ss[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PositionSchemaHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	s, err := h.svc.Get(c.Request().Context(), appmw.CurrentIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPositionSchemaResponse(s))
}

func (h *PositionSchemaHandler) Create(c echo.Context) error {
	var req PositionSchemaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	s, err := h.svc.Create(c.Request().Context(), appmw.CurrentIdentity(c), req.Name, req.Schema)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toPositionSchemaResponse(s))
}

func (h *PositionSchemaHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req PositionSchemaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	s, err := h.svc.Update(c.Request().Context(), appmw.CurrentIdentity(c), id, req.Name, req.Schema)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPositionSchemaResponse(s))
}

func (h *PositionSchemaHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toPositionSchemaResponse(s *model.PositionSchema) PositionSchemaResponse {
	return PositionSchemaResponse{
		ID:        s.ID,
		Name:      s.Name,
		Schema:    s.Schema,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}
